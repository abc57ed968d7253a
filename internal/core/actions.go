package core

// ManagerActions is the action table installed on the manager node.
// A nil field is an unregistered channel; emitting on it does nothing.
type ManagerActions struct {
	ViewOpen       func(bool)
	ViewWalletRepo func(RepositoryRef)
	Data           func(Data)
	State          func(State)
	Message        func(string)
}

// RepositoryActions is the action table installed on a repository node.
type RepositoryActions struct {
	ViewOpen       func(bool)
	ViewWalletRepo func(RepositoryRef)
}

// ConnectorActions is the action table installed on a connector node.
// ClientState and ClientMessage are only bound for primary connectors.
type ConnectorActions struct {
	Data          func(Data)
	State         func(State)
	Message       func(string)
	ClientState   func(State)
	ClientMessage func(string)
}

// EmitViewOpen pushes open if the channel is registered.
func (a ManagerActions) EmitViewOpen(open bool) {
	if a.ViewOpen != nil {
		a.ViewOpen(open)
	}
}

// EmitViewWalletRepo pushes the repository whose wallet list is shown.
func (a ManagerActions) EmitViewWalletRepo(repo RepositoryRef) {
	if a.ViewWalletRepo != nil {
		a.ViewWalletRepo(repo)
	}
}

// EmitData pushes account data.
func (a ManagerActions) EmitData(d Data) {
	if a.Data != nil {
		a.Data(d)
	}
}

// EmitState pushes a connection state.
func (a ManagerActions) EmitState(s State) {
	if a.State != nil {
		a.State(s)
	}
}

// EmitMessage pushes a status message.
func (a ManagerActions) EmitMessage(msg string) {
	if a.Message != nil {
		a.Message(msg)
	}
}

// EmitViewOpen pushes open if the channel is registered.
func (a RepositoryActions) EmitViewOpen(open bool) {
	if a.ViewOpen != nil {
		a.ViewOpen(open)
	}
}

// EmitViewWalletRepo pushes the repository whose wallet list is shown.
func (a RepositoryActions) EmitViewWalletRepo(repo RepositoryRef) {
	if a.ViewWalletRepo != nil {
		a.ViewWalletRepo(repo)
	}
}

// EmitData pushes account data if the channel is registered.
func (a ConnectorActions) EmitData(d Data) {
	if a.Data != nil {
		a.Data(d)
	}
}

// EmitState pushes the connector state.
func (a ConnectorActions) EmitState(s State) {
	if a.State != nil {
		a.State(s)
	}
}

// EmitMessage pushes a status message.
func (a ConnectorActions) EmitMessage(msg string) {
	if a.Message != nil {
		a.Message(msg)
	}
}

// EmitClientState pushes the wallet client state. Only primary connectors have it bound.
func (a ConnectorActions) EmitClientState(s State) {
	if a.ClientState != nil {
		a.ClientState(s)
	}
}

// EmitClientMessage pushes a wallet client message.
func (a ConnectorActions) EmitClientMessage(msg string) {
	if a.ClientMessage != nil {
		a.ClientMessage(msg)
	}
}
