// Package config provides configuration types, defaults, and persistence for colortags.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/colortags/internal/log"
)

// SaveRecentColors updates the recent_colors list in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveRecentColors(configPath string, recent []string) error {
	return saveKeys(configPath, map[string][]string{"recent_colors": recent})
}

// ClearRecentColors empties the recent_colors list in the config file.
func ClearRecentColors(configPath string) error {
	return SaveRecentColors(configPath, []string{})
}

// SaveVaultSwatches updates the vault_swatches list in the config file.
func SaveVaultSwatches(configPath string, vault []string) error {
	return saveKeys(configPath, map[string][]string{"vault_swatches": NormalizeVault(vault)})
}

// SaveColors updates both color lists in one write.
func SaveColors(configPath string, recent, vault []string) error {
	return saveKeys(configPath, map[string][]string{
		"recent_colors":  recent,
		"vault_swatches": NormalizeVault(vault),
	})
}

// saveKeys replaces (or appends) top-level string list keys and rewrites the
// file atomically.
func saveKeys(configPath string, lists map[string][]string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}
	root := doc.Content[0]

	// Stable key order for files that gain new keys.
	for _, key := range []string{"vault_swatches", "recent_colors"} {
		values, ok := lists[key]
		if !ok {
			continue
		}
		setMappingKey(root, key, buildListNode(values))
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}
	log.Debug(log.CatConfig, "Saved colors", "path", configPath, "keys", len(lists))
	return nil
}

// setMappingKey replaces the value for key in a mapping node, or appends it.
func setMappingKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// buildListNode creates a flow-less sequence of double-quoted strings so that
// "#rrggbb" values are not read back as comments.
func buildListNode(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: v,
			Style: yaml.DoubleQuotedStyle,
		})
	}
	return seq
}

// writeAtomic writes data to a temp file in the target directory, then renames it.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".colortags.yaml.tmp.*")
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
