package handler_test

import (
	"net/http"
	"testing"

	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
	"github.com/fekuna/omnipos-workshop-service/internal/logger"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule/handler"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule/repository"
	"github.com/fekuna/omnipos-workshop-service/internal/schedule/usecase"
	"github.com/fekuna/omnipos-workshop-service/internal/testutil"
	userrepo "github.com/fekuna/omnipos-workshop-service/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleHandler(t *testing.T) {
	gw := testutil.SetupTestDB(t)
	log := logger.NewNop()
	h := handler.NewScheduleHandler(usecase.NewScheduleUseCase(repository.NewPGRepository(gw), userrepo.NewPGRepository(gw), gw, log), log)
	userID := testutil.SeedUser(t, gw, "petr", "p", "worker", "Petr")

	r := testutil.SetupRouter()
	r.Any("/api/schedule", dispatch.Gin(h.Function()))

	w := testutil.DoRequest(r, http.MethodPost, "/api/schedule", map[string]interface{}{
		"user_id": userID, "work_date": "2026-07-14", "hours": 7.5,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := testutil.ParseResponse(w)["id"].(float64)

	w = testutil.DoRequest(r, http.MethodPut, "/api/schedule", map[string]interface{}{"id": id, "hours": 6}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.DoRequest(r, http.MethodGet, "/api/schedule?year=2026&month=7", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.ParseResponse(w)
	entries := body["schedule"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, float64(6), entry["hours"])
	assert.Equal(t, "2026-07-14", entry["work_date"])
	assert.Equal(t, "petr", entry["login"])
	assert.Len(t, body["users"].([]interface{}), 1)

	w = testutil.DoRequest(r, http.MethodPost, "/api/schedule", map[string]interface{}{
		"user_id": userID, "work_date": "14.07.2026", "hours": 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(r, http.MethodPut, "/api/schedule", map[string]interface{}{"id": 999, "hours": 1}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoRequest(r, http.MethodGet, "/api/schedule?year=x&month=1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoRequest(r, http.MethodDelete, "/api/schedule", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
