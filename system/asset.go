package system

import (
	"io/fs"
	"log/slog"

	"github.com/lixenwraith/cellscene/asset"
	"github.com/lixenwraith/cellscene/engine"
)

// AssetApplySystem publishes finished background loads at the start of a frame
type AssetApplySystem struct {
	server *asset.Server
}

func (s *AssetApplySystem) Name() string {
	return "apply_loaded_assets"
}

func (s *AssetApplySystem) Update() {
	s.server.ApplyCompleted()
}

// AssetPlugin inserts the image collection and an asset server over Root
type AssetPlugin struct {
	Root    fs.FS
	Workers int
	Logger  *slog.Logger
}

func (p AssetPlugin) Build(app *engine.App) {
	images, ok := engine.GetResource[*asset.Assets[asset.Image]](app.World.Resources)
	if !ok {
		images = asset.NewAssets[asset.Image]()
		engine.InsertResource(app, images)
	}

	server := asset.NewServer(p.Root, images, asset.WithWorkers(p.Workers), asset.WithLogger(p.Logger))
	engine.InsertResource(app, server)
	app.AddSystems(engine.First, &AssetApplySystem{server: server})
}
