package bridge

import (
	"sync"

	"github.com/zjrosen/walletbridge/internal/core"
)

// journal records calls across a fake graph in order.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	j.entries = append(j.entries, s)
	j.mu.Unlock()
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

func (j *journal) reset() {
	j.mu.Lock()
	j.entries = nil
	j.mu.Unlock()
}

type fakeManager struct {
	j         *journal
	repos     []core.RepositoryNode
	primaries []core.ConnectorNode

	mu        sync.Mutex
	tables    []core.ManagerActions
	mounted   int
	unmounted int
}

func (m *fakeManager) SetActions(a core.ManagerActions) {
	m.mu.Lock()
	m.tables = append(m.tables, a)
	m.mu.Unlock()
	m.j.add("set:manager")
}

func (m *fakeManager) OnMounted() {
	m.mu.Lock()
	m.mounted++
	m.mu.Unlock()
	m.j.add("onMounted")
}

func (m *fakeManager) OnUnmounted() {
	m.mu.Lock()
	m.unmounted++
	m.mu.Unlock()
	m.j.add("onUnmounted")
}

func (m *fakeManager) RepositoryNodes() []core.RepositoryNode      { return m.repos }
func (m *fakeManager) PrimaryConnectorNodes() []core.ConnectorNode { return m.primaries }

func (m *fakeManager) table(i int) core.ManagerActions {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 {
		i += len(m.tables)
	}
	return m.tables[i]
}

func (m *fakeManager) counts() (mounted, unmounted int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mounted, m.unmounted
}

type fakeRepo struct {
	j     *journal
	name  string
	conns []core.ConnectorNode

	mu     sync.Mutex
	tables []core.RepositoryActions
}

func (r *fakeRepo) ChainName() string { return r.name }

func (r *fakeRepo) SetActions(a core.RepositoryActions) {
	r.mu.Lock()
	r.tables = append(r.tables, a)
	r.mu.Unlock()
	r.j.add("set:repo:" + r.name)
}

func (r *fakeRepo) ConnectorNodes() []core.ConnectorNode { return r.conns }

func (r *fakeRepo) table(i int) core.RepositoryActions {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 {
		i += len(r.tables)
	}
	return r.tables[i]
}

type fakeConnector struct {
	j    *journal
	name string

	mu     sync.Mutex
	tables []core.ConnectorActions
}

func (c *fakeConnector) SetActions(a core.ConnectorActions) {
	c.mu.Lock()
	c.tables = append(c.tables, a)
	c.mu.Unlock()
	c.j.add("set:conn:" + c.name)
}

func (c *fakeConnector) table(i int) core.ConnectorActions {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 {
		i += len(c.tables)
	}
	return c.tables[i]
}

func (c *fakeConnector) installs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}

// graph is a manager with two repositories of two connectors each and two
// primary connectors.
type graph struct {
	j         *journal
	manager   *fakeManager
	repos     []*fakeRepo
	conns     []*fakeConnector
	primaries []*fakeConnector
}

func newGraph() *graph {
	j := &journal{}
	g := &graph{j: j}
	var repoNodes []core.RepositoryNode
	for _, name := range []string{"cosmoshub", "osmosis"} {
		repo := &fakeRepo{j: j, name: name}
		for _, w := range []string{"keplr", "leap"} {
			conn := &fakeConnector{j: j, name: name + "/" + w}
			repo.conns = append(repo.conns, conn)
			g.conns = append(g.conns, conn)
		}
		g.repos = append(g.repos, repo)
		repoNodes = append(repoNodes, repo)
	}
	var primaryNodes []core.ConnectorNode
	for _, w := range []string{"keplr", "leap"} {
		p := &fakeConnector{j: j, name: "primary/" + w}
		g.primaries = append(g.primaries, p)
		primaryNodes = append(primaryNodes, p)
	}
	g.manager = &fakeManager{j: j, repos: repoNodes, primaries: primaryNodes}
	return g
}
