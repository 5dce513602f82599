// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package artifacts resolves compiled contract artifacts by contract name.
//
// Artifacts follow the hardhat layout: one JSON file per contract under
// <dir>/<sourceName>/<ContractName>.json, next to a .dbg.json debug file and
// a build-info directory, both of which are ignored.
package artifacts

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/ksa-deploy/pkg/constants"
)

var (
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrAmbiguousArtifact = errors.New("multiple artifacts match contract name")
	ErrAbstractContract  = errors.New("contract has no creation bytecode")
	ErrUnlinkedLibraries = errors.New("contract bytecode has unlinked libraries")
	ErrInvalidBytecode   = errors.New("invalid contract bytecode")
)

type Artifact struct {
	Format           string                                `json:"_format"`
	ContractName     string                                `json:"contractName"`
	SourceName       string                                `json:"sourceName"`
	ABI              json.RawMessage                       `json:"abi"`
	Bytecode         string                                `json:"bytecode"`
	DeployedBytecode string                                `json:"deployedBytecode"`
	LinkReferences   map[string]map[string][]LinkReference `json:"linkReferences"`
	Path             string                                `json:"-"`
}

type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// FullyQualifiedName returns sourceName:contractName
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

func (a *Artifact) ParsedABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(string(a.ABI)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed parsing abi of %s: %w", a.ContractName, err)
	}
	return parsed, nil
}

// CreationCode decodes the creation bytecode of the contract
func (a *Artifact) CreationCode() ([]byte, error) {
	if len(a.LinkReferences) > 0 {
		libs := make([]string, 0, len(a.LinkReferences))
		for source, names := range a.LinkReferences {
			for name := range names {
				libs = append(libs, source+":"+name)
			}
		}
		sort.Strings(libs)
		return nil, fmt.Errorf("%w: %s needs %s", ErrUnlinkedLibraries, a.ContractName, strings.Join(libs, ", "))
	}
	code := strings.TrimPrefix(strings.TrimSpace(a.Bytecode), "0x")
	if code == "" {
		return nil, fmt.Errorf("%w: %s", ErrAbstractContract, a.ContractName)
	}
	// unlinked placeholders look like __$<34 hex chars>$__
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("%w: %s", ErrUnlinkedLibraries, a.ContractName)
	}
	bs, err := hex.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBytecode, a.ContractName, err)
	}
	return bs, nil
}

// ReadFile reads one artifact file
func ReadFile(path string) (*Artifact, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	artifact := &Artifact{}
	if err := json.Unmarshal(bs, artifact); err != nil {
		return nil, fmt.Errorf("failed decoding artifact %s: %w", path, err)
	}
	artifact.Path = path
	return artifact, nil
}

// Load finds the artifact for [name] under [dir]. [name] is either a bare
// contract name (KSAToken) or a fully qualified one (contracts/KSAToken.sol:KSAToken).
func Load(dir string, name string) (*Artifact, error) {
	sourceName, contractName := splitName(name)
	candidates := []*Artifact{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == constants.BuildInfoDir {
				return filepath.SkipDir
			}
			return nil
		}
		base := d.Name()
		if strings.HasSuffix(base, constants.DebugArtifactSuffix) || base != contractName+".json" {
			return nil
		}
		artifact, err := ReadFile(path)
		if err != nil {
			return err
		}
		if artifact.ContractName != contractName {
			return nil
		}
		if sourceName != "" && artifact.SourceName != sourceName {
			return nil
		}
		candidates = append(candidates, artifact)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (artifacts dir %s does not exist, compile the contracts first)", ErrArtifactNotFound, name, dir)
		}
		return nil, err
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s in %s", ErrArtifactNotFound, name, dir)
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.FullyQualifiedName())
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w %s, use a fully qualified name: %s", ErrAmbiguousArtifact, name, strings.Join(names, ", "))
	}
}

func splitName(name string) (string, string) {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
