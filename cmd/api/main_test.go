package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodmeal/internal/api"
	"moodmeal/internal/cart"
	"moodmeal/internal/config"
	"moodmeal/internal/meal"
)

// mockRecommender is a mock of the recommender.
type mockRecommender struct {
	result   meal.Result
	panicMsg string
	received meal.UserInputs
	calls    int
}

// Recommend mocks the Recommend method.
func (m *mockRecommender) Recommend(inputs meal.UserInputs) meal.Result {
	m.calls++
	m.received = inputs
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	return m.result
}

// Weights mocks the Weights method.
func (m *mockRecommender) Weights() meal.Weights {
	return meal.DefaultWeights
}

// MaxScore mocks the MaxScore method.
func (m *mockRecommender) MaxScore() int {
	return 28
}

// mockCatalog is a mock of the meal catalog.
type mockCatalog struct {
	samples []meal.Sample
}

// Samples mocks the Samples method.
func (m *mockCatalog) Samples() []meal.Sample {
	return m.samples
}

// mockCartStore is a mock of the cart store.
type mockCartStore struct {
	items    map[string][]cart.Item
	addError error
}

// newMockCartStore creates a new mockCartStore.
func newMockCartStore() *mockCartStore {
	return &mockCartStore{items: make(map[string][]cart.Item)}
}

// Add mocks the Add method.
func (m *mockCartStore) Add(sessionID, mealName, category string) (cart.Item, error) {
	if m.addError != nil {
		return cart.Item{}, m.addError
	}
	item := cart.Item{ID: uuid.NewString(), Meal: mealName, Category: category, Price: 200}
	m.items[sessionID] = append(m.items[sessionID], item)
	return item, nil
}

// Remove mocks the Remove method.
func (m *mockCartStore) Remove(sessionID, itemID string) error {
	for i, it := range m.items[sessionID] {
		if it.ID == itemID {
			m.items[sessionID] = append(m.items[sessionID][:i], m.items[sessionID][i+1:]...)
			return nil
		}
	}
	return cart.ErrItemNotFound
}

// Clear mocks the Clear method.
func (m *mockCartStore) Clear(sessionID string) {
	delete(m.items, sessionID)
}

// Summary mocks the Summary method.
func (m *mockCartStore) Summary(sessionID string) cart.Summary {
	return cart.Summarize(m.items[sessionID], 5)
}

// Sessions mocks the Sessions method.
func (m *mockCartStore) Sessions() int {
	return len(m.items)
}

func newTestRouter(t *testing.T, rec api.Recommender, catalog api.Catalog, store api.CartStore) *gin.Engine {
	t.Helper()
	// Set up Gin in test mode
	gin.SetMode(gin.TestMode)
	handler := api.NewHandler(rec, catalog, store)
	r, err := api.NewRouter(handler, api.RouterConfig{CORSOrigins: []string{"http://localhost:8081"}})
	require.NoError(t, err)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(api.SessionHeader, session)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

var completeForm = map[string]any{
	"mood":    "happy",
	"craving": "sweet",
	"time":    "morning",
	"diet":    "veg",
	"weather": "hot",
}

func TestRecommend(t *testing.T) {
	// Create mocks
	rec := &mockRecommender{result: meal.Result{
		Meal:       "Mock Meal",
		Category:   "breakfast",
		Reason:     "mock reason",
		MatchScore: 21,
		Strategy:   meal.StrategyBestMatch,
	}}
	r := newTestRouter(t, rec, &mockCatalog{}, newMockCartStore())

	form := map[string]any{}
	for k, v := range completeForm {
		form[k] = v
	}
	form["hunger_level"] = 80
	form["budget"] = "low"

	rr := doJSON(t, r, http.MethodPost, "/recommend", "", form)

	// Assert the response status code
	require.Equal(t, http.StatusOK, rr.Code)

	// Decode the response body
	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Mock Meal", resp.Meal)
	assert.Equal(t, "breakfast", resp.Category)
	assert.Equal(t, "mock reason", resp.Reason)
	assert.Equal(t, 21, resp.MatchScore)
	assert.Equal(t, 28, resp.MaxScore)

	// Assert the inputs passed to the recommender
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "high", rec.received.Hunger)
	assert.Equal(t, "low", rec.received.Budget)
	assert.Equal(t, "none", rec.received.Restrictions)
	assert.Equal(t, "normal", rec.received.Activity)
	assert.Equal(t, rec.received, resp.Inputs)

	// A new session id is issued
	_, err := uuid.Parse(rr.Header().Get(api.SessionHeader))
	assert.NoError(t, err)
}

func TestRecommend_DefaultHunger(t *testing.T) {
	rec := &mockRecommender{}
	r := newTestRouter(t, rec, &mockCatalog{}, newMockCartStore())

	rr := doJSON(t, r, http.MethodPost, "/recommend", "", completeForm)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "medium", rec.received.Hunger)
}

func TestRecommend_IncompleteForm(t *testing.T) {
	rec := &mockRecommender{}
	r := newTestRouter(t, rec, &mockCatalog{}, newMockCartStore())

	rr := doJSON(t, r, http.MethodPost, "/recommend", "", map[string]any{"mood": "happy", "diet": "veg"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"craving": "required", "time": "required", "weather": "required"}, body.Fields)
	assert.Equal(t, 0, rec.calls, "recommender must not run on an incomplete form")
}

func TestRecommend_UnknownValue(t *testing.T) {
	rec := &mockRecommender{}
	r := newTestRouter(t, rec, &mockCatalog{}, newMockCartStore())

	form := map[string]any{}
	for k, v := range completeForm {
		form[k] = v
	}
	form["mood"] = "Happy"
	form["hunger_level"] = 101

	rr := doJSON(t, r, http.MethodPost, "/recommend", "", form)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"mood":"enum"`)
	assert.Contains(t, rr.Body.String(), `"hunger_level":"max"`)
}

func TestRecommend_MalformedBody(t *testing.T) {
	r := newTestRouter(t, &mockRecommender{}, &mockCatalog{}, newMockCartStore())

	req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rr.Body.String())
}

func TestRecommend_RecommenderFailure(t *testing.T) {
	rec := &mockRecommender{panicMsg: "boom"}
	r := newTestRouter(t, rec, &mockCatalog{}, newMockCartStore())

	rr := doJSON(t, r, http.MethodPost, "/recommend", "", completeForm)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"failed to generate recommendation"}`, rr.Body.String())
}

func TestGetOptions(t *testing.T) {
	r := newTestRouter(t, &mockRecommender{}, &mockCatalog{}, newMockCartStore())

	rr := doJSON(t, r, http.MethodGet, "/options", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.OptionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 28, resp.MaxScore)
	assert.Len(t, resp.Attributes[meal.AttrMood], 6)
	assert.Len(t, resp.Required, 5)
	assert.Equal(t, "medium", resp.Defaults[meal.AttrHunger])
	assert.Equal(t, 5, resp.Weights[meal.AttrMood])
}

func TestGetMeals(t *testing.T) {
	catalog := &mockCatalog{samples: []meal.Sample{
		{Profile: meal.Profile{Mood: "happy"}, Meal: "Smoothie", Category: "breakfast"},
		{Profile: meal.Profile{Mood: "sad"}, Meal: "Ramen", Category: "main course"},
		{Profile: meal.Profile{Mood: "happy"}, Meal: "Thali", Category: "main course"},
	}}
	r := newTestRouter(t, &mockRecommender{}, catalog, newMockCartStore())

	// Test case 1: Get all meals
	rr := doJSON(t, r, http.MethodGet, "/meals", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var meals []meal.Sample
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meals))
	assert.Len(t, meals, 3)

	// Test case 2: Get happy meals
	rr = doJSON(t, r, http.MethodGet, "/meals?mood=happy", "", nil)
	meals = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meals))
	require.Len(t, meals, 2)
	assert.Equal(t, "Smoothie", meals[0].Meal)
	assert.Equal(t, "Thali", meals[1].Meal)

	// Test case 3: Get happy main courses
	rr = doJSON(t, r, http.MethodGet, "/meals?mood=happy&category=Main%20Course", "", nil)
	meals = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meals))
	require.Len(t, meals, 1)
	assert.Equal(t, "Thali", meals[0].Meal)

	// Test case 4: No angry meals
	rr = doJSON(t, r, http.MethodGet, "/meals?mood=angry", "", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCart(t *testing.T) {
	store := newMockCartStore()
	r := newTestRouter(t, &mockRecommender{}, &mockCatalog{}, store)
	session := uuid.NewString()

	// Add an item
	rr := doJSON(t, r, http.MethodPost, "/cart/items", session, map[string]string{"meal": "Poha", "category": "breakfast"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, session, rr.Header().Get(api.SessionHeader))
	var item cart.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, "Poha", item.Meal)

	// Read it back
	rr = doJSON(t, r, http.MethodGet, "/cart", session, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var sum cart.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sum))
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 200, sum.Subtotal)
	assert.Equal(t, 10, sum.Tax)
	assert.Equal(t, 210, sum.Total)

	// Another session sees an empty cart
	rr = doJSON(t, r, http.MethodGet, "/cart", uuid.NewString(), nil)
	assert.JSONEq(t, `{"items":[],"count":0,"subtotal":0,"tax":0,"total":0}`, rr.Body.String())

	// Remove it
	rr = doJSON(t, r, http.MethodDelete, "/cart/items/"+item.ID, session, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doJSON(t, r, http.MethodDelete, "/cart/items/"+item.ID, session, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCart_AddRequiresMeal(t *testing.T) {
	r := newTestRouter(t, &mockRecommender{}, &mockCatalog{}, newMockCartStore())

	rr := doJSON(t, r, http.MethodPost, "/cart/items", "", map[string]string{"category": "snack"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"meal":"required"`)

	store := newMockCartStore()
	store.addError = cart.ErrInvalidItem
	r = newTestRouter(t, &mockRecommender{}, &mockCatalog{}, store)
	rr = doJSON(t, r, http.MethodPost, "/cart/items", "", map[string]string{"meal": " "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCart_Clear(t *testing.T) {
	store := newMockCartStore()
	r := newTestRouter(t, &mockRecommender{}, &mockCatalog{}, store)
	session := uuid.NewString()

	doJSON(t, r, http.MethodPost, "/cart/items", session, map[string]string{"meal": "Poha"})
	rr := doJSON(t, r, http.MethodDelete, "/cart", session, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 0, store.Sessions())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &mockRecommender{}, &mockCatalog{}, newMockCartStore())
	rr := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestNewServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Recommend.Seed = 1
	srv, err := newServer(cfg)
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr)

	// Perfect match against the built-in dataset
	form := map[string]any{}
	for k, v := range completeForm {
		form[k] = v
	}
	form["hunger_level"] = 10
	rr := doJSON(t, srv.Handler, http.MethodPost, "/recommend", "", form)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Mango Smoothie Bowl", resp.Meal)
	assert.Equal(t, 28, resp.MatchScore)
	assert.Equal(t, 28, resp.MaxScore)

	// Deluxe pricing through the real cart
	session := uuid.NewString()
	rr = doJSON(t, srv.Handler, http.MethodPost, "/cart/items", session, map[string]string{"meal": "Deluxe Thali", "category": "main course"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var item cart.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.GreaterOrEqual(t, item.Price, 195)
	assert.LessOrEqual(t, item.Price, 390)

	// Metrics are exposed
	rr = doJSON(t, srv.Handler, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "moodmeal_recommendations_total")
}
