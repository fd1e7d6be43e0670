package config

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	discard := log.New(ioutil.Discard, "", 0)

	cfg, err := initializeFs(fs, "shellcfg", discard)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("MatchesDefault", func(t *testing.T) {
		assert.Equal(t, DefaultConfiguration().Prompt, cfg.Prompt)
		assert.Equal(t, DefaultConfiguration().MaxBackgroundJobs, cfg.MaxBackgroundJobs)
	})

	t.Run("CreateSessionLog", func(t *testing.T) {
		fd, err := cfg.CreateSessionLog("test.log")
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("Reload", func(t *testing.T) {
		reloaded, err := loadFs(fs, "shellcfg")
		assert.Nil(t, err)
		assert.Equal(t, cfg.Prompt, reloaded.Prompt)
	})

	t.Run("KeepsExisting", func(t *testing.T) {
		contents, err := afero.ReadFile(fs, "shellcfg/"+ConfigurationName)
		assert.Nil(t, err)

		_, err = initializeFs(fs, "shellcfg", discard)
		assert.Nil(t, err)

		after, err := afero.ReadFile(fs, "shellcfg/"+ConfigurationName)
		assert.Nil(t, err)
		assert.Equal(t, contents, after)
	})
}
