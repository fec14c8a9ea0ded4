package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/response"
	"github.com/Bayu5aputra/personal-profile/pkg/utils"
)

type ReviewKeyHandler struct {
	keyUseCase *usecase.KeyUseCase
}

func NewReviewKeyHandler(keyUseCase *usecase.KeyUseCase) *ReviewKeyHandler {
	return &ReviewKeyHandler{
		keyUseCase: keyUseCase,
	}
}

type validateKeyRequest struct {
	Key string `json:"key" validate:"required"`
}

type generateKeysRequest struct {
	Count int `json:"count" validate:"required,min=1"`
}

func (h *ReviewKeyHandler) ValidateKey(c echo.Context) error {
	var req validateKeyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, h.keyUseCase.ValidateKey(c.Request().Context(), req.Key))
}

func (h *ReviewKeyHandler) ListKeys(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	keys := h.keyUseCase.GetAllKeys(c.Request().Context())

	return response.Paginated(c, utils.Paginate(keys, params), int64(len(keys)), params.Page, params.PageSize)
}

func (h *ReviewKeyHandler) GenerateKeys(c echo.Context) error {
	var req generateKeysRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	keys, err := h.keyUseCase.AddKeys(c.Request().Context(), req.Count)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, keys)
}

func (h *ReviewKeyHandler) GetStatistics(c echo.Context) error {
	return response.Success(c, h.keyUseCase.GetKeyStatistics(c.Request().Context()))
}

func (h *ReviewKeyHandler) DeleteKey(c echo.Context) error {
	keyID := c.Param("keyId")
	if keyID == "" {
		return response.Error(c, errors.BadRequest("Key ID is required", nil))
	}

	result := h.keyUseCase.DeleteKey(c.Request().Context(), keyID)
	if result.Success {
		return response.Success(c, result)
	}

	status := http.StatusServiceUnavailable
	switch result.Code {
	case errors.CodeProtectedKey:
		status = http.StatusConflict
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	return response.Fail(c, status, result.Code, result.Message, nil)
}

func (h *ReviewKeyHandler) PurgeUnusedKeys(c echo.Context) error {
	return response.Success(c, h.keyUseCase.DeleteAllUnusedKeys(c.Request().Context()))
}
