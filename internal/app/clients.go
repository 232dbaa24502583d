package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/folio-backend/internal/clients/aigateway"
	"github.com/yungbote/folio-backend/internal/clients/kv"
	"github.com/yungbote/folio-backend/internal/platform/logger"
)

type Clients struct {
	Store kv.Store
	AI    aigateway.Client
}

// wireClients builds the optional external collaborators. Both are allowed
// to be absent: without redis every limiter and cache fails open, without
// the gateway every generation serves the default layout.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	var store kv.Store
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		s, err := kv.NewRedisStore(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis store: %w", err)
		}
		store = s
	} else {
		log.Warn("REDIS_ADDR not set; caches and rate limits are disabled")
	}

	var ai aigateway.Client
	if strings.TrimSpace(os.Getenv("AI_GATEWAY_API_KEY")) != "" {
		c, err := aigateway.NewClient(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init ai gateway client: %w", err)
		}
		ai = c
	} else {
		log.Warn("AI_GATEWAY_API_KEY not set; serving default layouts only")
	}

	return Clients{Store: store, AI: ai}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}
