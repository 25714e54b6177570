package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/EAniwa/legacylancers-sub004/models"
	"github.com/EAniwa/legacylancers-sub004/services/scheduling"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SchedulingHandler exposes the multi-party shared-window search. Search
// results are cached in Redis so clients can page back to them while picking
// a slot to submit through the ordinary booking path.
type SchedulingHandler struct {
	Engine scheduling.Engine
	Cache  *redis.Client
}

// NewSchedulingHandler constructs a SchedulingHandler.
func NewSchedulingHandler(engine scheduling.Engine, cache *redis.Client) *SchedulingHandler {
	return &SchedulingHandler{Engine: engine, Cache: cache}
}

type commonSlotSearch struct {
	SearchID string                       `json:"searchId"`
	Request  scheduling.CommonSlotRequest `json:"request"`
	Slots    []models.CandidateSlot       `json:"slots"`
}

// FindCommonSlots runs a shared-window search across participants and caches
// the result under a search id.
func (h *SchedulingHandler) FindCommonSlots(c *gin.Context) {
	var req scheduling.CommonSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slots, err := h.Engine.FindCommonSlots(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	search := commonSlotSearch{
		SearchID: uuid.New().String(),
		Request:  req,
		Slots:    slots,
	}
	if h.Cache != nil {
		if data, err := json.Marshal(search); err == nil {
			key := utils.SearchSessionPrefix + search.SearchID
			if err := h.Cache.Set(c.Request.Context(), key, data, utils.SearchSessionTTL).Err(); err != nil {
				getLogger(c).Warn("failed to cache search session")
			}
		}
	}

	c.JSON(http.StatusOK, search)
}

// GetSearch returns a previously cached common-slot search.
func (h *SchedulingHandler) GetSearch(c *gin.Context) {
	if h.Cache == nil {
		utils.JSONError(c, http.StatusNotFound, "search not found or expired", "")
		return
	}
	key := utils.SearchSessionPrefix + c.Param("searchId")
	data, err := h.Cache.Get(c.Request.Context(), key).Result()
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "search not found or expired", "")
		return
	}

	var search commonSlotSearch
	if err := json.Unmarshal([]byte(data), &search); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to parse search session", err.Error())
		return
	}
	c.JSON(http.StatusOK, search)
}
