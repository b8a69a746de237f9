package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-planner-be/internal/dto"
	"meal-planner-be/internal/entity"
	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/pkg/serverutils"
	"meal-planner-be/pkg/tier"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type stubMealPlanService struct {
	generate    func(userId uuid.UUID) (*dto.GenerateMealPlanResponse, error)
	latest      func(requesterId, userId uuid.UUID) (*dto.MealPlanResponse, error)
	replace     func(requesterId, itemId uuid.UUID) (*dto.ReplaceMealResponse, error)
	deletePlan  func(requesterId, planId uuid.UUID) error
	lastRequest uuid.UUID
}

func (s *stubMealPlanService) Generate(ctx context.Context, userId uuid.UUID) (*dto.GenerateMealPlanResponse, error) {
	s.lastRequest = userId
	return s.generate(userId)
}

func (s *stubMealPlanService) GetLatestByUser(ctx context.Context, requesterId uuid.UUID, userId uuid.UUID) (*dto.MealPlanResponse, error) {
	return s.latest(requesterId, userId)
}

func (s *stubMealPlanService) ReplaceItem(ctx context.Context, requesterId uuid.UUID, itemId uuid.UUID) (*dto.ReplaceMealResponse, error) {
	return s.replace(requesterId, itemId)
}

func (s *stubMealPlanService) Delete(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) error {
	return s.deletePlan(requesterId, planId)
}

type stubShoppingListService struct {
	build  func(requesterId, planId uuid.UUID) (*dto.ShoppingListResponse, error)
	export func(requesterId, planId uuid.UUID) (string, error)
}

func (s *stubShoppingListService) Build(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) (*dto.ShoppingListResponse, error) {
	return s.build(requesterId, planId)
}

func (s *stubShoppingListService) Export(ctx context.Context, requesterId uuid.UUID, planId uuid.UUID) (string, error) {
	return s.export(requesterId, planId)
}

func (s *stubShoppingListService) Refresh(ctx context.Context, planId uuid.UUID) error {
	return nil
}

type stubPreferenceService struct {
	saved *dto.SavePreferencesRequest
}

func (s *stubPreferenceService) Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceResponse, error) {
	return nil, nil
}

func (s *stubPreferenceService) Save(ctx context.Context, userId uuid.UUID, req *dto.SavePreferencesRequest) (*dto.PreferenceResponse, error) {
	s.saved = req
	return &dto.PreferenceResponse{UserId: userId, DietType: req.DietType, MealsPerDay: req.MealsPerDay}, nil
}

type stubTierService struct{}

func (stubTierService) GetTiers(ctx context.Context) []*dto.TierResponse {
	res := make([]*dto.TierResponse, 0, 3)
	for _, t := range tier.All() {
		res = append(res, &dto.TierResponse{Tier: t.String(), Limits: tier.LimitsFor(t), MaxMealsPerDay: tier.LimitsFor(t).MaxMealsPerDay()})
	}
	return res
}

func (stubTierService) ResolveEffectiveTier(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	return &entity.User{Id: userId, Tier: tier.Free}, nil
}

func (stubTierService) GetUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	return &dto.UsageStatusResponse{Tier: "free"}, nil
}

func (stubTierService) ChargeProviderCall(ctx context.Context, user *entity.User) error {
	return nil
}

type stubUserService struct{}

func (stubUserService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	return &dto.MeResponse{Id: userId, Tier: "free"}, nil
}

type testApp struct {
	app          *fiber.App
	mealPlans    *stubMealPlanService
	shoppingList *stubShoppingListService
	preferences  *stubPreferenceService
}

func newTestApp() *testApp {
	ta := &testApp{
		mealPlans:    &stubMealPlanService{},
		shoppingList: &stubShoppingListService{},
		preferences:  &stubPreferenceService{},
	}

	ta.app = fiber.New(fiber.Config{
		ErrorHandler: serverutils.ErrorHandlerMiddleware(logger.NewNopLogger()),
	})
	api := ta.app.Group("/api")
	jwtMiddleware := serverutils.NewJwtMiddleware(testSecret)

	NewPlanController(stubTierService{}).RegisterRoutes(api)
	NewUserController(stubUserService{}, ta.preferences, stubTierService{}).RegisterRoutes(api, jwtMiddleware)
	NewMealPlanController(ta.mealPlans).RegisterRoutes(api, jwtMiddleware)
	NewShoppingListController(ta.shoppingList).RegisterRoutes(api, jwtMiddleware)
	return ta
}

func bearer(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func (ta *testApp) do(t *testing.T, method, path string, userId *uuid.UUID, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userId != nil {
		req.Header.Set("Authorization", bearer(t, *userId))
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestTiersArePublic(t *testing.T) {
	ta := newTestApp()
	resp := ta.do(t, http.MethodGet, "/api/plans/tiers", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[serverutils.Response[[]dto.TierResponse]](t, resp)
	require.Len(t, body.Data, 3)
	assert.Equal(t, 2, body.Data[0].MaxMealsPerDay)
}

func TestMealPlanRoutesRequireToken(t *testing.T) {
	ta := newTestApp()
	resp := ta.do(t, http.MethodPost, "/api/mealplan/v1/generate", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGenerate(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name            string
		err             error
		wantStatus      int
		wantUpgrade     bool
		wantMessagePart string
	}{
		{"success", nil, http.StatusOK, false, "Meal plan generated"},
		{"meals per day over tier", apperror.UpgradeRequired("Your free tier allows up to 2 meals per day. Upgrade for more!"), http.StatusForbidden, true, "2 meals per day"},
		{"preferences missing", apperror.PolicyRejection("Please set your preferences first"), http.StatusBadRequest, false, "preferences"},
		{"quota", apperror.QuotaExceeded("Your free tier allows 50 recipe requests per day. Upgrade for more!"), http.StatusTooManyRequests, true, "50 recipe requests"},
		{"provider down", apperror.Upstream("Failed to generate meal plan", io.ErrUnexpectedEOF), http.StatusInternalServerError, false, "Failed to generate meal plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp()
			ta.mealPlans.generate = func(id uuid.UUID) (*dto.GenerateMealPlanResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &dto.GenerateMealPlanResponse{
					MealPlan:    &dto.MealPlanResponse{Id: uuid.New(), UserId: id},
					MealsPerDay: 2,
					TotalMeals:  14,
				}, nil
			}

			resp := ta.do(t, http.MethodPost, "/api/mealplan/v1/generate", &userId, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, userId, ta.mealPlans.lastRequest)

			if tt.err == nil {
				body := decode[serverutils.Response[dto.GenerateMealPlanResponse]](t, resp)
				assert.Equal(t, 14, body.Data.TotalMeals)
				assert.Contains(t, body.Message, tt.wantMessagePart)
				return
			}
			body := decode[serverutils.ErrorBody](t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantUpgrade, body.UpgradeRequired)
			assert.Contains(t, body.Message, tt.wantMessagePart)
		})
	}
}

func TestGetLatestByUserReturnsNullData(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()
	ta.mealPlans.latest = func(requesterId, id uuid.UUID) (*dto.MealPlanResponse, error) {
		return nil, nil
	}

	resp := ta.do(t, http.MethodGet, "/api/mealplan/v1/user/"+userId.String(), &userId, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]interface{}](t, resp)
	assert.Nil(t, body["data"])
}

func TestReplaceItemBadId(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()
	resp := ta.do(t, http.MethodPut, "/api/mealplan/v1/item/not-a-uuid", &userId, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReplaceItemForbidden(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()
	itemId := uuid.New()
	ta.mealPlans.replace = func(requesterId, id uuid.UUID) (*dto.ReplaceMealResponse, error) {
		assert.Equal(t, itemId, id)
		return nil, apperror.Forbidden("Access denied")
	}

	resp := ta.do(t, http.MethodPut, "/api/mealplan/v1/item/"+itemId.String(), &userId, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode[serverutils.ErrorBody](t, resp)
	assert.Equal(t, "Access denied", body.Message)
}

func TestDeletePlan(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()
	planId := uuid.New()
	var deleted uuid.UUID
	ta.mealPlans.deletePlan = func(requesterId, id uuid.UUID) error {
		deleted = id
		return nil
	}

	resp := ta.do(t, http.MethodDelete, "/api/mealplan/v1/"+planId.String(), &userId, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, planId, deleted)
}

func TestShoppingListExport(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()
	planId := uuid.New()
	ta.shoppingList.export = func(requesterId, id uuid.UUID) (string, error) {
		return "Shopping List\n\nProduce:\n  - Tomato 2\n\nTotal items: 1\n", nil
	}

	resp := ta.do(t, http.MethodGet, "/api/shoppinglist/v1/"+planId.String()+"/export", &userId, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), planId.String())

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "  - Tomato 2")
}

func TestShoppingListGet(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()
	planId := uuid.New()
	ta.shoppingList.build = func(requesterId, id uuid.UUID) (*dto.ShoppingListResponse, error) {
		return &dto.ShoppingListResponse{PlanId: id, TotalItems: 0}, nil
	}

	resp := ta.do(t, http.MethodGet, "/api/shoppinglist/v1/"+planId.String(), &userId, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[serverutils.Response[dto.ShoppingListResponse]](t, resp)
	assert.Equal(t, planId, body.Data.PlanId)
	assert.Equal(t, 0, body.Data.TotalItems)
}

func TestSavePreferencesValidation(t *testing.T) {
	ta := newTestApp()
	userId := uuid.New()

	resp := ta.do(t, http.MethodPost, "/api/user/v1/preferences", &userId, `{"diet_type":"vegan","meals_per_day":11}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, ta.preferences.saved)

	resp = ta.do(t, http.MethodPost, "/api/user/v1/preferences", &userId, `{"diet_type":"vegan","meals_per_day":4}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, ta.preferences.saved)
	assert.Equal(t, 4, ta.preferences.saved.MealsPerDay)
}
