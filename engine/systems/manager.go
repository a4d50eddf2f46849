package systems

import (
	"github.com/spaghettifunk/astra/engine/assets"
	"github.com/spaghettifunk/astra/engine/config"
	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer"
)

/**
 * @brief Wires the engine configuration into the running systems: the
 * device, the material system and the asset manager feeding it.
 */
type SystemManager struct {
	device         *renderer.Device
	materialSystem *MaterialSystem
	assetManager   *assets.AssetManager
}

func NewSystemManager(cfg *config.Config, backend renderer.RendererBackend) (*SystemManager, error) {
	core.SetLogLevel(cfg.LogLevel)

	device, err := renderer.NewDevice(cfg.AppName, backend)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		MaxMaterialCount: cfg.MaxMaterials,
	})
	if err != nil {
		return nil, err
	}
	am, err := assets.NewAssetManager()
	if err != nil {
		return nil, err
	}
	if cfg.AutoReload {
		if err := am.Initialize(cfg.AssetsDir); err != nil {
			core.LogWarn("asset watching disabled: %s", err.Error())
		}
	}
	return &SystemManager{
		device:         device,
		materialSystem: ms,
		assetManager:   am,
	}, nil
}

func (sm *SystemManager) Device() *renderer.Device {
	return sm.device
}

func (sm *SystemManager) MaterialSystem() *MaterialSystem {
	return sm.materialSystem
}

func (sm *SystemManager) AssetManager() *assets.AssetManager {
	return sm.assetManager
}

// Update drains the pending material reloads. Called once per engine
// tick on the update thread.
func (sm *SystemManager) Update() error {
	for {
		select {
		case cfg := <-sm.assetManager.Reloads():
			if err := sm.materialSystem.Reload(cfg); err != nil {
				core.LogError(err.Error())
			}
		default:
			return nil
		}
	}
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.assetManager.Close(); err != nil {
		return err
	}
	if err := sm.materialSystem.Shutdown(); err != nil {
		return err
	}
	return sm.device.Shutdown()
}
