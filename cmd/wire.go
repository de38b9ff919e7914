package cmd

import (
	"fmt"

	"video-tutor/utils"
	"video-tutor/work-flows/catalog"
	"video-tutor/work-flows/client"
	"video-tutor/work-flows/managers"
	"video-tutor/work-flows/services"
)

type app struct {
	cfg        *utils.Config
	catalog    *catalog.Catalog
	resolver   *services.VideoResolver
	manager    *managers.TutorManager
	translator *services.Translator
}

func wireApp(envFiles []string) (*app, error) {
	cfg, err := utils.LoadConfig(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	resolver := services.NewVideoResolver(cfg.CacheDir, cfg.MaxVideoSizeGB)
	apiClient := client.NewTutorClient(cfg.ChatAPIEndpoint, cfg.ChatAPITimeout)

	return &app{
		cfg:        cfg,
		catalog:    cat,
		resolver:   resolver,
		manager:    managers.NewTutorManager(cat, resolver, apiClient),
		translator: services.NewTranslator(cfg.TranslateSource, cfg.TranslateTarget),
	}, nil
}
