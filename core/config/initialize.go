package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes a default configuration into the directory, keeping any
// existing config.yaml, and returns the loaded result.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	return initializeFs(afero.NewOsFs(), path, logger)
}

func initializeFs(fs afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)
	switch _, err := fs.Stat(configPath); {
	case os.IsNotExist(err):
		logger.Printf("Writing %s", configPath)
		if err := afero.WriteFile(fs, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		logger.Printf("Keeping existing %s", configPath)
	}

	logsPath := filepath.Join(path, LogsDirName)
	logger.Printf("Creating %s", logsPath)
	if err := fs.MkdirAll(logsPath, 0700); err != nil {
		return nil, err
	}

	return loadFs(fs, path)
}
