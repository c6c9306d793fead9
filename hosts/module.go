package hosts

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"

	"github.com/reusee/dscope"
	"github.com/reusee/taihost/cmds"
	"github.com/reusee/taihost/configs"
	"github.com/reusee/taihost/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs configs.Module
}

//go:embed schema.cue
var Schema string

var configPaths = cmds.Collect[string]("-config")

const configFileName = "taihost.cue"

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := slices.Clone(*configPaths)

	if len(paths) == 0 {
		var dirs []string
		if dir, err := os.Getwd(); err == nil {
			dirs = append(dirs, dir)
		}
		if dir, err := os.UserConfigDir(); err == nil {
			dirs = append(dirs, dir)
		}
		dirs = append(dirs, "/etc")
		for _, dir := range dirs {
			path := filepath.Join(dir, configFileName)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}

	return configs.NewLoader(paths, Schema)
}
