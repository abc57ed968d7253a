package core

// ManagerNode is the root of a manager graph as seen by the reactive layer.
// Repository and primary connector lists are stable for the node's lifetime.
type ManagerNode interface {
	SetActions(ManagerActions)
	OnMounted()
	OnUnmounted()
	RepositoryNodes() []RepositoryNode
	PrimaryConnectorNodes() []ConnectorNode
}

// RepositoryNode is one chain's repository.
type RepositoryNode interface {
	RepositoryRef
	SetActions(RepositoryActions)
	ConnectorNodes() []ConnectorNode
}

// ConnectorNode is a wallet connector. Each node holds at most one action
// table; SetActions replaces it wholesale.
type ConnectorNode interface {
	SetActions(ConnectorActions)
}
