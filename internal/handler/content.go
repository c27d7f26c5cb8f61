package handler

import (
	"context"
	"log"
	"net/http"

	"ironline-site/internal/content"
	"ironline-site/internal/model"
	"ironline-site/internal/toast"
	"ironline-site/pkg/apierror"
	"ironline-site/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ContentHandler exposes the content store over HTTP.
type ContentHandler struct {
	store    *content.Store
	bridge   content.Bridge
	toasts   *toast.Queue
	validate *validator.Validate
}

// NewContentHandler creates a new content handler. bridge may be nil, in
// which case publish and pull are unavailable.
func NewContentHandler(store *content.Store, bridge content.Bridge, toasts *toast.Queue, validate *validator.Validate) *ContentHandler {
	if validate == nil {
		validate = NewValidator()
	}
	if toasts == nil {
		toasts = toast.NewQueue(0)
	}
	return &ContentHandler{store: store, bridge: bridge, toasts: toasts, validate: validate}
}

// All handles GET /api/content
func (h *ContentHandler) All(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.Collections())
}

// Collection returns a handler for GET /api/content/<name>.
func (h *ContentHandler) Collection(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := h.store.Collection(name)
		if !ok {
			response.Error(w, apierror.NotFound("unknown collection "+name))
			return
		}
		response.OK(w, v)
	}
}

// Rewards handles GET /api/content/rewards?tier=premium|free
func (h *ContentHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	switch tier := model.Tier(r.URL.Query().Get("tier")); tier {
	case "":
		response.OK(w, h.store.Rewards())
	case model.TierPremium, model.TierFree:
		response.OK(w, h.store.RewardsByTier(tier))
	default:
		response.Error(w, apierror.BadRequest("tier must be premium or free"))
	}
}

// Schema handles GET /api/content/schema/{collection}
func (h *ContentHandler) Schema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	s, ok := content.Schema(name)
	if !ok {
		response.Error(w, apierror.NotFound("unknown collection "+name))
		return
	}
	response.Write(w, http.StatusOK, s)
}

// SetSection handles PUT /api/content/sections/{name}
func (h *ContentHandler) SetSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var sec model.SectionContent
	if !decodeJSON(w, r, &sec, h.validate) {
		return
	}
	h.store.SetSection(r.Context(), name, sec)
	h.toasts.Success("Section " + name + " saved")
	response.OK(w, sec)
}

// DeleteSection handles DELETE /api/content/sections/{name}
func (h *ContentHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.store.DeleteSection(r.Context(), name) {
		response.Error(w, apierror.NotFound("section "+name+" not found"))
		return
	}
	h.toasts.Success("Section " + name + " deleted")
	response.NoContent(w)
}

// Reset handles POST /api/content/reset. The defaults are published too,
// so a later pull does not bring back the old content.
func (h *ContentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.ResetAll(r.Context())

	published := 0
	if h.bridge != nil {
		n, err := h.store.Publish(r.Context(), h.bridge)
		if err != nil {
			log.Printf("[ContentHandler] Publishing defaults incomplete: %v", err)
			h.toasts.Error("Content reset, but some published copies are stale")
			response.Error(w, apierror.InternalError("failed to publish some collections"))
			return
		}
		published = n
	}

	h.toasts.Success("All content reset to defaults")
	response.OK(w, map[string]interface{}{"reset": content.Names(), "published": published})
}

// Publish handles POST /api/content/publish
func (h *ContentHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if h.bridge == nil {
		response.Error(w, apierror.ServiceUnavailable("persistence bridge not configured"))
		return
	}
	n, err := h.store.Publish(r.Context(), h.bridge)
	if err != nil {
		log.Printf("[ContentHandler] Publish incomplete: %v", err)
		h.toasts.Error("Failed to publish some collections")
		response.Error(w, apierror.InternalError("failed to publish some collections"))
		return
	}
	h.toasts.Success("Content published")
	response.OK(w, map[string]int{"published": n})
}

// Pull handles POST /api/content/pull
func (h *ContentHandler) Pull(w http.ResponseWriter, r *http.Request) {
	if h.bridge == nil {
		response.Error(w, apierror.ServiceUnavailable("persistence bridge not configured"))
		return
	}
	n, err := h.store.Pull(r.Context(), h.bridge)
	if err != nil {
		log.Printf("[ContentHandler] Pull incomplete: %v", err)
		h.toasts.Error("Some collections could not be loaded")
	} else {
		h.toasts.Success("Content loaded")
	}
	response.OK(w, map[string]int{"pulled": n})
}

// Mount registers the admin mutation routes on r, which is expected to be
// mounted at /api/content behind admin auth.
func (h *ContentHandler) Mount(r chi.Router) {
	r.Post("/reset", h.Reset)
	r.Post("/publish", h.Publish)
	r.Post("/pull", h.Pull)

	r.Put("/sections/{name}", h.SetSection)
	r.Delete("/sections/{name}", h.DeleteSection)

	records(r, "/gameModes", h, content.CollectionGameModes, "Game mode",
		h.store.AddGameMode, h.store.UpdateGameMode, h.store.DeleteGameMode)
	records(r, "/operators", h, content.CollectionOperators, "Operator",
		h.store.AddOperator, h.store.UpdateOperator, h.store.DeleteOperator)
	records(r, "/maps", h, content.CollectionMaps, "Map",
		h.store.AddMap, h.store.UpdateMap, h.store.DeleteMap)
	records(r, "/rewards", h, content.CollectionRewards, "Reward",
		h.store.AddReward, h.store.UpdateReward, h.store.DeleteReward)
	records(r, "/bottomButtons", h, content.CollectionBottomButtons, "Button",
		h.store.AddBottomButton, h.store.UpdateBottomButton, h.store.DeleteBottomButton)

	r.Patch("/battlePass", singleton(h, content.CollectionBattlePass, "Battle pass", h.store.UpdateBattlePass))

	r.Patch("/navigation", singleton(h, content.CollectionNavigation, "Navigation", h.store.UpdateNavigation))
	records(r, "/navigation/menuItems", h, content.CollectionNavigation, "Menu item",
		h.store.AddMenuItem, h.store.UpdateMenuItem, h.store.DeleteMenuItem)
	records(r, "/navigation/socialLinks", h, content.CollectionNavigation, "Social link",
		h.store.AddSocialLink, h.store.UpdateSocialLink, h.store.DeleteSocialLink)
	records(r, "/navigation/supportLinks", h, content.CollectionNavigation, "Support link",
		h.store.AddSupportLink, h.store.UpdateSupportLink, h.store.DeleteSupportLink)

	r.Patch("/hero", singleton(h, content.CollectionHero, "Hero", h.store.UpdateHero))
	records(r, "/hero/buttons", h, content.CollectionHero, "Hero button",
		h.store.AddHeroButton, h.store.UpdateHeroButton, h.store.DeleteHeroButton)

	r.Patch("/footer", singleton(h, content.CollectionFooter, "Footer", h.store.UpdateFooter))
	records(r, "/footer/links", h, content.CollectionFooter, "Footer link",
		h.store.AddFooterLink, h.store.UpdateFooterLink, h.store.DeleteFooterLink)

	r.Patch("/launch", singleton(h, content.CollectionLaunch, "Launch page", h.store.UpdateLaunch))
	records(r, "/launch/media", h, content.CollectionLaunch, "Media item",
		h.store.AddLaunchMedia, h.store.UpdateLaunchMedia, h.store.DeleteLaunchMedia)
	records(r, "/launch/socialLinks", h, content.CollectionLaunch, "Social link",
		h.store.AddLaunchSocial, h.store.UpdateLaunchSocial, h.store.DeleteLaunchSocial)
	records(r, "/launch/buttons", h, content.CollectionLaunch, "Button",
		h.store.AddLaunchButton, h.store.UpdateLaunchButton, h.store.DeleteLaunchButton)
	records(r, "/launch/postLaunchButtons", h, content.CollectionLaunch, "Button",
		h.store.AddPostLaunchButton, h.store.UpdatePostLaunchButton, h.store.DeletePostLaunchButton)
}

// records registers POST path, PATCH path/{id} and DELETE path/{id}.
// Mutations respond with the whole collection they touched.
func records[T, P any](
	r chi.Router,
	path string,
	h *ContentHandler,
	collection, label string,
	add func(context.Context, T),
	update func(context.Context, string, P) bool,
	del func(context.Context, string) bool,
) {
	r.Post(path, func(w http.ResponseWriter, r *http.Request) {
		var rec T
		if !decodeJSON(w, r, &rec, h.validate) {
			return
		}
		add(r.Context(), rec)
		h.toasts.Success(label + " added")
		h.respondCollection(w, http.StatusCreated, collection)
	})

	r.Patch(path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var patch P
		if !decodeJSON(w, r, &patch, h.validate) {
			return
		}
		if !update(r.Context(), id, patch) {
			h.toasts.Error(label + " " + id + " not found")
			response.Error(w, apierror.NotFound(label+" "+id+" not found"))
			return
		}
		h.toasts.Success(label + " updated")
		h.respondCollection(w, http.StatusOK, collection)
	})

	r.Delete(path+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !del(r.Context(), id) {
			h.toasts.Error(label + " " + id + " not found")
			response.Error(w, apierror.NotFound(label+" "+id+" not found"))
			return
		}
		h.toasts.Success(label + " deleted")
		h.respondCollection(w, http.StatusOK, collection)
	})
}

// singleton builds a PATCH handler for a single-record collection.
func singleton[P any](h *ContentHandler, collection, label string, update func(context.Context, P)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if !decodeJSON(w, r, &patch, h.validate) {
			return
		}
		update(r.Context(), patch)
		h.toasts.Success(label + " saved")
		h.respondCollection(w, http.StatusOK, collection)
	}
}

func (h *ContentHandler) respondCollection(w http.ResponseWriter, status int, collection string) {
	v, _ := h.store.Collection(collection)
	response.JSON(w, status, v)
}
