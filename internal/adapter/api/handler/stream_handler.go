package handler

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/domain/service"
	"rivalioo/internal/usecase"
	"rivalioo/pkg/response"
)

type StreamHandler struct {
	streamUseCase *usecase.StreamStatsUseCase
}

func NewStreamHandler(streamUseCase *usecase.StreamStatsUseCase) *StreamHandler {
	return &StreamHandler{
		streamUseCase: streamUseCase,
	}
}

type selectVideoRequest struct {
	VideoID string `json:"video_id" validate:"required,max=32"`
}

func (h *StreamHandler) GetSnapshot(c echo.Context) error {
	return response.Success(c, h.streamUseCase.Snapshot())
}

func (h *StreamHandler) SelectVideo(c echo.Context) error {
	var req selectVideoRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, h.streamUseCase.SetSelectedVideo(req.VideoID))
}

// FormatViews exposes the view-count formatter for clients rendering raw
// counts.
func (h *StreamHandler) FormatViews(c echo.Context) error {
	count := c.QueryParam("count")
	return response.Success(c, map[string]string{
		"count":     count,
		"formatted": service.FormatViewCount(count),
	})
}
