package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/walletbridge/internal/log"
)

// SaveChains replaces the chains list in the config file.
// Comments and formatting in other sections are preserved.
func SaveChains(configPath string, chains []string) error {
	node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(chains))}
	for _, c := range chains {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: c})
	}
	if err := saveKey(configPath, "chains", node); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Saved chains", "path", configPath, "chains", chains)
	return nil
}

// SaveWallets replaces the wallets list in the config file.
func SaveWallets(configPath string, wallets []WalletConfig) error {
	if err := ValidateWallets(wallets); err != nil {
		return err
	}
	return saveKey(configPath, "wallets", buildWalletsNode(wallets))
}

func buildWalletsNode(wallets []WalletConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(wallets))}
	for _, w := range wallets {
		wn := &yaml.Node{Kind: yaml.MappingNode}
		add := func(k, v string) {
			if v == "" {
				return
			}
			wn.Content = append(wn.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Value: v},
			)
		}
		add("name", w.Name)
		add("pretty_name", w.PrettyName)
		add("mode", w.Mode)
		add("behaviour", w.Behaviour)
		if w.Latency > 0 {
			add("latency", w.Latency.String())
		}
		node.Content = append(node.Content, wn)
	}
	return node
}

// saveKey sets a top-level key, appending it when absent.
func saveKey(configPath, key string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	found := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".walletbridge.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
