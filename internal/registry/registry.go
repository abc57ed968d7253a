// Package registry loads chain and asset-list records. Files are JSON with
// comments and trailing commas allowed; a built-in set of chains is embedded.
package registry

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/zjrosen/walletbridge/internal/core"
	"github.com/zjrosen/walletbridge/internal/log"
)

const (
	ChainsFile     = "chains.jsonc"
	AssetListsFile = "assetlists.jsonc"
)

//go:embed defaults/*.jsonc
var defaults embed.FS

// Registry is an ordered set of chains with their asset lists.
type Registry struct {
	Chains     []core.Chain
	AssetLists []core.AssetList
}

// ParseChains strips JSONC comments and trailing commas from data, then
// unmarshals the result into a list of chains.
func ParseChains(data []byte) ([]core.Chain, error) {
	var chains []core.Chain
	if err := json.Unmarshal(jsonc.ToJSON(data), &chains); err != nil {
		return nil, fmt.Errorf("parsing chains: %w", err)
	}
	return chains, nil
}

// ParseAssetLists parses a JSONC asset-list array.
func ParseAssetLists(data []byte) ([]core.AssetList, error) {
	var lists []core.AssetList
	if err := json.Unmarshal(jsonc.ToJSON(data), &lists); err != nil {
		return nil, fmt.Errorf("parsing asset lists: %w", err)
	}
	return lists, nil
}

// Default returns the embedded registry.
func Default() (*Registry, error) {
	chains, err := readEmbedded(ChainsFile, ParseChains)
	if err != nil {
		return nil, err
	}
	lists, err := readEmbedded(AssetListsFile, ParseAssetLists)
	if err != nil {
		return nil, err
	}
	reg := &Registry{Chains: chains, AssetLists: lists}
	return reg, reg.Validate()
}

func readEmbedded[T any](name string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	data, err := defaults.ReadFile("defaults/" + name)
	if err != nil {
		return zero, fmt.Errorf("reading embedded %s: %w", name, err)
	}
	return parse(data)
}

// Load reads chains.jsonc and assetlists.jsonc from dir and merges them over
// the embedded registry; entries with the same chain name replace defaults.
// An empty dir returns the defaults.
func Load(dir string) (*Registry, error) {
	reg, err := Default()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return reg, nil
	}

	chains, err := readFile(filepath.Join(dir, ChainsFile), ParseChains)
	if err != nil {
		return nil, err
	}
	lists, err := readFile(filepath.Join(dir, AssetListsFile), ParseAssetLists)
	if err != nil {
		return nil, err
	}

	reg.mergeChains(chains)
	reg.mergeAssetLists(lists)
	log.Debug(log.CatRegistry, "registry loaded", "dir", dir, "chains", len(reg.Chains))
	return reg, reg.Validate()
}

// readFile parses path, treating a missing file as empty.
func readFile[T any](path string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	data, err := os.ReadFile(path) //nolint:gosec // G304: registry dir is user-controlled
	if errors.Is(err, os.ErrNotExist) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := parse(data)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func (r *Registry) mergeChains(chains []core.Chain) {
	for _, c := range chains {
		if i := r.chainIndex(c.ChainName); i >= 0 {
			r.Chains[i] = c
			continue
		}
		r.Chains = append(r.Chains, c)
	}
}

func (r *Registry) mergeAssetLists(lists []core.AssetList) {
	for _, l := range lists {
		replaced := false
		for i := range r.AssetLists {
			if r.AssetLists[i].ChainName == l.ChainName {
				r.AssetLists[i] = l
				replaced = true
				break
			}
		}
		if !replaced {
			r.AssetLists = append(r.AssetLists, l)
		}
	}
}

func (r *Registry) chainIndex(name string) int {
	for i, c := range r.Chains {
		if c.ChainName == name {
			return i
		}
	}
	return -1
}

// Chain looks up a chain by name.
func (r *Registry) Chain(name string) (core.Chain, bool) {
	if i := r.chainIndex(name); i >= 0 {
		return r.Chains[i], true
	}
	return core.Chain{}, false
}

// AssetList looks up the asset list for a chain.
func (r *Registry) AssetList(chainName string) (core.AssetList, bool) {
	for _, l := range r.AssetLists {
		if l.ChainName == chainName {
			return l, true
		}
	}
	return core.AssetList{}, false
}

// Select narrows the registry to names, in the order given. An empty names
// list keeps every chain.
func (r *Registry) Select(names []string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	out := &Registry{}
	for _, name := range names {
		c, ok := r.Chain(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownChain, name)
		}
		out.Chains = append(out.Chains, c)
		if l, ok := r.AssetList(name); ok {
			out.AssetLists = append(out.AssetLists, l)
		}
	}
	return out, nil
}

// Names returns the chain names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Chains))
	for i, c := range r.Chains {
		names[i] = c.ChainName
	}
	return names
}

// Validate checks required fields and duplicate names.
func (r *Registry) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(r.Chains))
	for i, c := range r.Chains {
		switch {
		case c.ChainName == "":
			errs = append(errs, fmt.Errorf("chain %d: chain_name is required", i))
			continue
		case seen[c.ChainName]:
			errs = append(errs, fmt.Errorf("chain %s: duplicate chain_name", c.ChainName))
		}
		seen[c.ChainName] = true
		if c.ChainID == "" {
			errs = append(errs, fmt.Errorf("chain %s: chain_id is required", c.ChainName))
		}
		if c.Bech32Prefix == "" {
			errs = append(errs, fmt.Errorf("chain %s: bech32_prefix is required", c.ChainName))
		}
	}
	var orphans []string
	for _, l := range r.AssetLists {
		if !seen[l.ChainName] {
			orphans = append(orphans, l.ChainName)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		errs = append(errs, fmt.Errorf("asset lists without chain: %s", strings.Join(orphans, ", ")))
	}
	return errors.Join(errs...)
}
