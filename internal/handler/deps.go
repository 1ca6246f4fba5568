package handler

import (
	"github.com/Bini-2002/campuscraft/internal/app/assistant"
	"github.com/Bini-2002/campuscraft/internal/app/messaging"
	"github.com/Bini-2002/campuscraft/internal/app/storage"
	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/configs"
)

// AppDeps bundles the services handlers need. Constructed once in main and
// shared by every handler closure.
type AppDeps struct {
	Config    *configs.AppConfig
	Store     *store.Store
	Storage   storage.StorageService
	Hub       *messaging.Hub
	Assistant *assistant.Service
}
