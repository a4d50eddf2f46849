package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/astra/engine/assets/loaders"
	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	LastLoaded time.Time
}

/**
 * @brief Tracks material definition files under the assets directory and
 * watches them for changes. Changed files are parsed and queued; the
 * engine drains the queue on its update tick via Reloads.
 */
type AssetManager struct {
	assets map[string]AssetInfo
	loader *loaders.MaterialLoader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
	reloads  chan *metadata.MaterialConfig
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loader:   &loaders.MaterialLoader{},
		fsnotify: fsWatch,
		reloads:  make(chan *metadata.MaterialConfig, 64),
		done:     make(chan struct{}),
	}, nil
}

// Initialize starts the watch loop and registers all material files
// already present under assetsDir.
func (am *AssetManager) Initialize(assetsDir string) error {
	am.started = true
	go am.start()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}
	return nil
}

// Reloads is the queue of material configs parsed from changed files.
func (am *AssetManager) Reloads() <-chan *metadata.MaterialConfig {
	return am.reloads
}

// LoadMaterial parses a single material definition file.
func (am *AssetManager) LoadMaterial(path string) (*metadata.MaterialConfig, error) {
	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return am.loader.Load(path)
}

// Materials returns the paths of all known material files.
func (am *AssetManager) Materials() []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	paths := make([]string, 0, len(am.assets))
	for p := range am.assets {
		paths = append(paths, p)
	}
	return paths
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) Close() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	// The watch loop owns the watcher once started; otherwise close it here.
	if !am.started {
		return am.fsnotify.Close()
	}
	return nil
}

func (am *AssetManager) start() {
	for {
		select {
		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name, true)
			}
			// Can't stat a deleted file, just drop it from the table.
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	wd = wd + "/" // add trailing slash
	err = filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			p := strings.TrimPrefix(walkPath, wd)
			am.handleFileEvent(p, false)
		}
		return nil
	})
	return err
}

// handleFileEvent registers a created or modified material file and, for
// on-disk changes, queues a reload of its parsed config.
func (am *AssetManager) handleFileEvent(path string, reload bool) {
	if filepath.Ext(path) != loaders.MaterialFileExtension {
		return
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	if !reload {
		return
	}
	config, err := am.loader.Load(path)
	if err != nil {
		core.LogError("failed to reload material '%s': %s", path, err.Error())
		return
	}
	select {
	case am.reloads <- config:
	default:
		core.LogWarn("material reload queue full, dropping '%s'", path)
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
}
