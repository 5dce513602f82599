// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deployments stores one yaml record per deployed contract and network.
package deployments

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/luxfi/ksa-deploy/pkg/constants"
	"gopkg.in/yaml.v3"
)

var ErrInvalidRecord = errors.New("invalid deployment record")

type Record struct {
	Contract    string    `yaml:"contract"`
	Network     string    `yaml:"network"`
	ChainID     uint64    `yaml:"chainId"`
	Address     string    `yaml:"address"`
	TxHash      string    `yaml:"txHash"`
	Deployer    string    `yaml:"deployer"`
	BlockNumber uint64    `yaml:"blockNumber"`
	GasUsed     uint64    `yaml:"gasUsed"`
	DeployedAt  time.Time `yaml:"deployedAt"`
}

// Path returns <dir>/<network>/<contract>.yaml
func Path(dir, network, contract string) string {
	return filepath.Join(dir, network, contract+constants.DeploymentRecordExt)
}

func (r Record) validate() error {
	if r.Contract == "" || r.Network == "" || r.Address == "" {
		return fmt.Errorf("%w: contract, network and address are required", ErrInvalidRecord)
	}
	return nil
}

// Save writes [rec] under [dir], replacing any previous record of the same
// contract on the same network. Returns the path written.
func Save(dir string, rec Record) (string, error) {
	if err := rec.validate(); err != nil {
		return "", err
	}
	path := Path(dir, rec.Network, rec.Contract)
	if err := os.MkdirAll(filepath.Dir(path), constants.DefaultPerms755); err != nil {
		return "", fmt.Errorf("failed creating deployments dir: %w", err)
	}
	recordYAML, err := yaml.Marshal(rec)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, recordYAML, constants.WriteReadReadPerms); err != nil {
		return "", fmt.Errorf("failed writing deployment record: %w", err)
	}
	return path, nil
}

// Load reads a single record file
func Load(path string) (Record, error) {
	recordBytes, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the records dir
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := yaml.Unmarshal(recordBytes, &rec); err != nil {
		return Record{}, fmt.Errorf("%w %s: %w", ErrInvalidRecord, path, err)
	}
	if err := rec.validate(); err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// List returns all records under [dir], sorted by network then contract.
// A missing dir yields no records.
func List(dir string) ([]Record, error) {
	records := []Record{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), constants.DeploymentRecordExt) {
			return nil
		}
		rec, err := Load(path)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Network != records[j].Network {
			return records[i].Network < records[j].Network
		}
		return records[i].Contract < records[j].Contract
	})
	return records, nil
}
