// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package paths

import (
	"fmt"
	"path/filepath"

	vgfs "code.vegaprotocol.io/loopvault/libs/fs"

	"github.com/adrg/xdg"
)

// LoopvaultHome is the name of the loopvault folder for every type of file
// structure.
const LoopvaultHome = "loopvault"

// File system structure exposed by this package:
//
//	CACHE_PATH
//	└── loopvault
//	    └── node
//	CONFIG_PATH
//	└── loopvault
//	    └── node
//	        └── config.toml
//	DATA_PATH
//	└── loopvault
//	    └── node
//	STATE_PATH
//	└── loopvault
//	    ├── node
//	    │   └── logs
//	    └── simulations

// CachePath is the path to a file or a directory holding cached data, only
// kept for performance reasons and safe to delete at any time.
type CachePath string

func (p CachePath) String() string {
	return string(p)
}

// ConfigPath is the path to a file or a directory holding configuration
// edited by the user.
type ConfigPath string

func (p ConfigPath) String() string {
	return string(p)
}

// DataPath is the path to a file or a directory holding data essential to
// the application, such as wallets or keys.
type DataPath string

func (p DataPath) String() string {
	return string(p)
}

// StatePath is the path to a file or a directory holding state the
// application can rebuild, such as logs or simulation output.
type StatePath string

func (p StatePath) String() string {
	return string(p)
}

var (
	// NodeCacheHome is the directory holding the node's cached data.
	NodeCacheHome = CachePath("node")

	// NodeConfigHome is the directory holding the node configuration.
	NodeConfigHome = ConfigPath("node")

	// NodeDefaultConfigFile is the default configuration file for the node.
	NodeDefaultConfigFile = JoinConfigPath(NodeConfigHome, "config.toml")

	// NodeDataHome is the directory holding the node's essential data.
	NodeDataHome = DataPath("node")

	// NodeStateHome is the directory holding the node's state.
	NodeStateHome = StatePath("node")

	// NodeLogsHome is the directory holding the node's log files.
	NodeLogsHome = JoinStatePath(NodeStateHome, "logs")

	// SimulationStateHome is the directory holding simulation runs output.
	SimulationStateHome = StatePath("simulations")
)

// JoinCachePath joins any number of path elements to a root CachePath.
func JoinCachePath(p CachePath, elems ...string) CachePath {
	return CachePath(joinPath(string(p), elems...))
}

// JoinConfigPath joins any number of path elements to a root ConfigPath.
func JoinConfigPath(p ConfigPath, elems ...string) ConfigPath {
	return ConfigPath(joinPath(string(p), elems...))
}

// JoinDataPath joins any number of path elements to a root DataPath.
func JoinDataPath(p DataPath, elems ...string) DataPath {
	return DataPath(joinPath(string(p), elems...))
}

// JoinStatePath joins any number of path elements to a root StatePath.
func JoinStatePath(p StatePath, elems ...string) StatePath {
	return StatePath(joinPath(string(p), elems...))
}

func joinPath(p string, elems ...string) string {
	trailing := filepath.Join(elems...)
	return filepath.Join(p, trailing)
}

// DefaultPaths resolves paths against the XDG Base Directory specification,
// ignoring the XDG_*_HOME environment variables on MacOS.
type DefaultPaths struct{}

func (p *DefaultPaths) CreateCachePathFor(relFilePath CachePath) (string, error) {
	fullPath := p.CachePathFor(relFilePath)
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateCacheDirFor(relDirPath CachePath) (string, error) {
	fullPath := p.CachePathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateConfigPathFor(relFilePath ConfigPath) (string, error) {
	fullPath := p.ConfigPathFor(relFilePath)
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateConfigDirFor(relDirPath ConfigPath) (string, error) {
	fullPath := p.ConfigPathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateDataPathFor(relFilePath DataPath) (string, error) {
	fullPath := p.DataPathFor(relFilePath)
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateDataDirFor(relDirPath DataPath) (string, error) {
	fullPath := p.DataPathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateStatePathFor(relFilePath StatePath) (string, error) {
	fullPath := p.StatePathFor(relFilePath)
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CreateStateDirFor(relDirPath StatePath) (string, error) {
	fullPath := p.StatePathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *DefaultPaths) CachePathFor(relPath CachePath) string {
	return filepath.Join(xdg.CacheHome, LoopvaultHome, relPath.String())
}

func (p *DefaultPaths) ConfigPathFor(relPath ConfigPath) string {
	return filepath.Join(xdg.ConfigHome, LoopvaultHome, relPath.String())
}

func (p *DefaultPaths) DataPathFor(relPath DataPath) string {
	return filepath.Join(xdg.DataHome, LoopvaultHome, relPath.String())
}

func (p *DefaultPaths) StatePathFor(relPath StatePath) string {
	return filepath.Join(xdg.StateHome, LoopvaultHome, relPath.String())
}

// CustomPaths mimics the default structure under a custom home directory:
//
//	CUSTOM_HOME
//	├── cache
//	├── config
//	├── data
//	└── state
type CustomPaths struct {
	CustomHome string
}

func (p *CustomPaths) CreateCachePathFor(relFilePath CachePath) (string, error) {
	return CreateCustomCachePathFor(p.CustomHome, relFilePath)
}

func (p *CustomPaths) CreateCacheDirFor(relDirPath CachePath) (string, error) {
	fullPath := p.CachePathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *CustomPaths) CreateConfigPathFor(relFilePath ConfigPath) (string, error) {
	return CreateCustomConfigPathFor(p.CustomHome, relFilePath)
}

func (p *CustomPaths) CreateConfigDirFor(relDirPath ConfigPath) (string, error) {
	fullPath := p.ConfigPathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *CustomPaths) CreateDataPathFor(relFilePath DataPath) (string, error) {
	return CreateCustomDataPathFor(p.CustomHome, relFilePath)
}

func (p *CustomPaths) CreateDataDirFor(relDirPath DataPath) (string, error) {
	fullPath := p.DataPathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *CustomPaths) CreateStatePathFor(relFilePath StatePath) (string, error) {
	return CreateCustomStatePathFor(p.CustomHome, relFilePath)
}

func (p *CustomPaths) CreateStateDirFor(relDirPath StatePath) (string, error) {
	fullPath := p.StatePathFor(relDirPath)
	if err := vgfs.EnsureDir(fullPath); err != nil {
		return "", fmt.Errorf("couldn't create directories at %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (p *CustomPaths) CachePathFor(relPath CachePath) string {
	return filepath.Join(p.CustomHome, "cache", relPath.String())
}

func (p *CustomPaths) ConfigPathFor(relPath ConfigPath) string {
	return filepath.Join(p.CustomHome, "config", relPath.String())
}

func (p *CustomPaths) DataPathFor(relPath DataPath) string {
	return filepath.Join(p.CustomHome, "data", relPath.String())
}

func (p *CustomPaths) StatePathFor(relPath StatePath) string {
	return filepath.Join(p.CustomHome, "state", relPath.String())
}

// CreateCustomCachePathFor builds the path for a cache file under the custom
// home and creates intermediate directories.
func CreateCustomCachePathFor(customHome string, relFilePath CachePath) (string, error) {
	fullPath := filepath.Join(customHome, "cache", relFilePath.String())
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// CreateCustomConfigPathFor builds the path for a config file under the
// custom home and creates intermediate directories.
func CreateCustomConfigPathFor(customHome string, relFilePath ConfigPath) (string, error) {
	fullPath := filepath.Join(customHome, "config", relFilePath.String())
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// CreateCustomDataPathFor builds the path for a data file under the custom
// home and creates intermediate directories.
func CreateCustomDataPathFor(customHome string, relFilePath DataPath) (string, error) {
	fullPath := filepath.Join(customHome, "data", relFilePath.String())
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// CreateCustomStatePathFor builds the path for a state file under the custom
// home and creates intermediate directories.
func CreateCustomStatePathFor(customHome string, relFilePath StatePath) (string, error) {
	fullPath := filepath.Join(customHome, "state", relFilePath.String())
	if err := vgfs.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return "", fmt.Errorf("couldn't create directories for file %s: %w", fullPath, err)
	}
	return fullPath, nil
}
