package cmd

import (
	"context"
	"log"
	"time"

	"github.com/dukex/mixpanel"
	"github.com/pkg/errors"

	"github.com/socialsphere/socialsphere/pkg/api"
	"github.com/socialsphere/socialsphere/pkg/conf"
	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/redis"
	"github.com/socialsphere/socialsphere/pkg/sessions"
	"github.com/socialsphere/socialsphere/pkg/social"
	"github.com/socialsphere/socialsphere/pkg/tracking"
)

type Conf struct {
	API      conf.APIConf      `mapstructure:"api"`
	Redis    conf.RedisConf    `mapstructure:"redis"`
	Store    conf.StoreConf    `mapstructure:"store"`
	Tracking conf.TrackingConf `mapstructure:"tracking"`
}

type app struct {
	queue    *pubsub.Queue
	sessions *sessions.Manager
	store    *social.Store
}

func setup() (*app, error) {
	config := &Conf{}
	err := conf.Load(file, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	rdb := redis.NewRedis(config.Redis)
	queue := pubsub.NewQueue()

	var manager *sessions.Manager
	client := api.NewClient(config.API.URL, func() string {
		if manager == nil {
			return ""
		}

		return manager.Token()
	}, queue)

	if config.API.Timeout > 0 {
		client.SetTimeout(time.Duration(config.API.Timeout) * time.Second)
	}

	if config.API.Rate > 0 {
		client.SetRate(config.API.Rate)
	}

	manager = sessions.NewManager(rdb, client, queue)
	manager.Start()

	if err := manager.Refresh(context.Background()); err != nil && err != sessions.ErrNoSession {
		log.Printf("failed to refresh session: %v", err)
	}

	store := social.NewStore(client, queue, social.NewCacheStorage(rdb), social.Config{
		PageSize: config.Store.PageSize,
		Offline:  config.Store.Offline,
	})

	if user, ok := manager.User(); ok {
		store.SetViewer(user)
	}

	if config.Tracking.MixpanelToken != "" {
		tracking.Start(queue, tracking.NewMixpanelTracker(mixpanel.New(config.Tracking.MixpanelToken, "")))
	}

	return &app{
		queue:    queue,
		sessions: manager,
		store:    store,
	}, nil
}
