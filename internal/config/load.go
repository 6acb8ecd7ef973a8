package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Load reads a JSON config from src into a copy of DefaultConfig. src is
// either a local path or any go-getter address (https://, s3::, gcs::,
// git::...); remote files are downloaded to a temporary directory first.
func Load(ctx context.Context, src string, log *slog.Logger) (*Config, error) {
	path := src
	if !isLocalFile(src) {
		dir, err := os.MkdirTemp("", "cavegen-config-")
		if err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)

		path = filepath.Join(dir, "config.json")
		pwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		client := &getter.Client{
			Ctx:  ctx,
			Src:  src,
			Dst:  path,
			Pwd:  pwd,
			Mode: getter.ClientModeFile,
		}
		if err := client.Get(); err != nil {
			return nil, fmt.Errorf("fetch config %s: %w", src, err)
		}
		log.Info("fetched remote config", "src", src)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	log.Info("loaded config from file", "src", src)
	return cfg, nil
}

func isLocalFile(src string) bool {
	info, err := os.Stat(src)
	return err == nil && info.Mode().IsRegular()
}
