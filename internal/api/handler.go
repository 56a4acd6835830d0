package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moodmeal/internal/cart"
	"moodmeal/internal/logging"
	"moodmeal/internal/meal"
	"moodmeal/internal/metrics"
)

// Recommender defines the scoring operations the handler needs.
type Recommender interface {
	Recommend(inputs meal.UserInputs) meal.Result
	Weights() meal.Weights
	MaxScore() int
}

// Catalog exposes the reference dataset.
type Catalog interface {
	Samples() []meal.Sample
}

// CartStore defines the per-session cart operations.
type CartStore interface {
	Add(sessionID, mealName, category string) (cart.Item, error)
	Remove(sessionID, itemID string) error
	Clear(sessionID string)
	Summary(sessionID string) cart.Summary
	Sessions() int
}

// Handler handles HTTP requests.
type Handler struct {
	Recommender Recommender
	Catalog     Catalog
	Cart        CartStore
}

// NewHandler creates a new Handler.
func NewHandler(recommender Recommender, catalog Catalog, cartStore CartStore) *Handler {
	return &Handler{Recommender: recommender, Catalog: catalog, Cart: cartStore}
}

// defaultHungerLevel is the slider position when the client sends none.
const defaultHungerLevel = 50

// RecommendRequest is one submission of the mood form.
type RecommendRequest struct {
	Mood    string `json:"mood" binding:"required,enum=mood"`
	Craving string `json:"craving" binding:"required,enum=craving"`
	Time    string `json:"time" binding:"required,enum=time"`
	Diet    string `json:"diet" binding:"required,enum=diet"`
	Weather string `json:"weather" binding:"required,enum=weather"`

	// HungerLevel is the 0-100 slider position.
	HungerLevel  *int   `json:"hunger_level" binding:"omitempty,min=0,max=100"`
	Restrictions string `json:"restrictions" binding:"omitempty,enum=restrictions"`
	Budget       string `json:"budget" binding:"omitempty,enum=budget"`
	Activity     string `json:"activity" binding:"omitempty,enum=activity"`
}

// Inputs resolves the request into a complete set of scorer inputs.
func (r RecommendRequest) Inputs() meal.UserInputs {
	level := defaultHungerLevel
	if r.HungerLevel != nil {
		level = *r.HungerLevel
	}
	return meal.UserInputs{
		Mood:         r.Mood,
		Craving:      r.Craving,
		Hunger:       meal.HungerFromLevel(level),
		Time:         r.Time,
		Diet:         r.Diet,
		Restrictions: r.Restrictions,
		Weather:      r.Weather,
		Activity:     r.Activity,
		Budget:       r.Budget,
	}.WithDefaults()
}

// RecommendResponse is a recommendation plus the context needed to render it.
type RecommendResponse struct {
	meal.Result
	MaxScore int             `json:"maxScore"`
	Inputs   meal.UserInputs `json:"inputs"`
}

// Recommend scores a submission against the dataset.
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inputs := req.Inputs()
	res, err := h.recommend(inputs)
	if err != nil {
		metrics.RecommendationFailures.Inc()
		logging.Error().Err(err).Str("mood", inputs.Mood).Msg("failed to generate recommendation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate recommendation"})
		return
	}

	metrics.RecordRecommendation(string(res.Strategy), res.MatchScore)
	logging.Debug().
		Str("mood", inputs.Mood).
		Str("meal", res.Meal).
		Int("score", res.MatchScore).
		Str("strategy", string(res.Strategy)).
		Msg("recommendation served")

	c.JSON(http.StatusOK, RecommendResponse{
		Result:   res,
		MaxScore: h.Recommender.MaxScore(),
		Inputs:   inputs,
	})
}

// recommend shields the caller from a panicking recommender.
func (h *Handler) recommend(inputs meal.UserInputs) (res meal.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recommender panicked: %v", r)
		}
	}()
	return h.Recommender.Recommend(inputs), nil
}

// OptionsResponse describes the form the client must render.
type OptionsResponse struct {
	Attributes map[meal.Attribute][]meal.Choice `json:"attributes"`
	Required   []meal.Attribute                 `json:"required"`
	Defaults   map[meal.Attribute]string        `json:"defaults"`
	Weights    meal.Weights                     `json:"weights"`
	MaxScore   int                              `json:"maxScore"`
}

// GetOptions returns the selectable values for every attribute.
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Attributes: meal.Domains,
		Required: []meal.Attribute{
			meal.AttrMood, meal.AttrCraving, meal.AttrTime, meal.AttrDiet, meal.AttrWeather,
		},
		Defaults: map[meal.Attribute]string{
			meal.AttrHunger:       meal.HungerFromLevel(defaultHungerLevel),
			meal.AttrRestrictions: meal.DefaultRestrictions,
			meal.AttrBudget:       meal.DefaultBudget,
			meal.AttrActivity:     meal.DefaultActivity,
		},
		Weights:  h.Recommender.Weights(),
		MaxScore: h.Recommender.MaxScore(),
	})
}

// GetMeals lists dataset samples, optionally filtered by mood or category.
func (h *Handler) GetMeals(c *gin.Context) {
	mood := c.Query("mood")
	category := c.Query("category")

	samples := []meal.Sample{}
	for _, s := range h.Catalog.Samples() {
		if mood != "" && s.Mood != mood {
			continue
		}
		if category != "" && !strings.EqualFold(s.Category, category) {
			continue
		}
		samples = append(samples, s)
	}
	c.JSON(http.StatusOK, samples)
}

// AddItemRequest adds a recommended meal to the cart.
type AddItemRequest struct {
	Meal     string `json:"meal" binding:"required"`
	Category string `json:"category"`
}

// GetCart returns the caller's cart with totals.
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cart.Summary(sessionID(c)))
}

// AddCartItem prices a meal and adds it to the caller's cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.Cart.Add(sessionID(c), req.Meal, req.Category)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logging.Error().Err(err).Msg("failed to add cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
		return
	}

	metrics.CartItemsAdded.WithLabelValues(categoryLabel(item.Category)).Inc()
	metrics.ActiveSessions.Set(float64(h.Cart.Sessions()))
	c.JSON(http.StatusCreated, item)
}

// RemoveCartItem deletes one item from the caller's cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	err := h.Cart.Remove(sessionID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logging.Error().Err(err).Msg("failed to remove cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item from cart"})
		return
	}
	metrics.CartItemsRemoved.Inc()
	c.Status(http.StatusNoContent)
}

// ClearCart empties the caller's cart.
func (h *Handler) ClearCart(c *gin.Context) {
	h.Cart.Clear(sessionID(c))
	metrics.ActiveSessions.Set(float64(h.Cart.Sessions()))
	c.Status(http.StatusNoContent)
}

// categoryLabel keeps the metric label set bounded.
func categoryLabel(category string) string {
	category = strings.ToLower(category)
	if _, ok := cart.DefaultRanges[category]; ok {
		return category
	}
	return "other"
}
