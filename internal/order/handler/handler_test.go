package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/events"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/order/handler"
	"github.com/fekuna/omnipos-workshop-service/internal/order/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/order/usecase"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gw := testutil.SetupTestDB(t)
	log := logger.NewNop()
	h := handler.NewOrderHandler(usecase.NewOrderUseCase(repository.NewPGRepository(gw), gw, events.NewNoopPublisher(), log), log)

	r := testutil.SetupRouter()
	r.Any("/api/orders", dispatch.Gin(h.Function()))
	return r
}

func TestOrderFlow(t *testing.T) {
	r := setupRouter(t)

	w := testutil.DoRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"order_number": "A-1",
		"items":        []map[string]interface{}{{"material": "cotton", "quantity": 10, "size": "M", "color": "red"}},
	}, map[string]string{"X-User-Id": "3"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := int64(testutil.ParseResponse(w)["id"].(float64))
	path := "/api/orders?id=" + strconv.FormatInt(orderID, 10)

	w = testutil.DoRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"order_id": orderID, "material": "wool", "quantity": 5,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoRequest(r, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := testutil.ParseResponse(w)
	assert.Equal(t, float64(3), got["created_by"])
	items := got["items"].([]interface{})
	require.Len(t, items, 2)
	firstItem := items[0].(map[string]interface{})["id"].(float64)

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{
		"item_id": firstItem, "completed_quantity": 4,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "in_progress", testutil.ParseResponse(w)["status"])

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{
		"id": orderID, "completed_quantity": 15,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", testutil.ParseResponse(w)["status"])

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{
		"id": orderID, "status": "shipped",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.DoRequest(r, http.MethodGet, "/api/orders?status=shipped", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"order_number":"A-1"`)

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{
		"id": orderID, "items": []map[string]interface{}{},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", testutil.ParseResponse(w)["status"])

	w = testutil.DoRequest(r, http.MethodDelete, "/api/orders", map[string]interface{}{"id": orderID}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.DoRequest(r, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderErrors(t *testing.T) {
	r := setupRouter(t)

	w := testutil.DoRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{"items": []interface{}{}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "order_number is required")

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{"id": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{"id": 1, "status": "done"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(r, http.MethodPut, "/api/orders", map[string]interface{}{"id": 404, "status": "completed"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoRequest(r, http.MethodDelete, "/api/orders?id=404", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoRequest(r, http.MethodPost, "/api/orders", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(r, http.MethodOptions, "/api/orders", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Content-Type, X-User-Id, X-Auth-Token", w.Header().Get("Access-Control-Allow-Headers"))
}
