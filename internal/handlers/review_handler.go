package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/msme-awards/adjudication-api/internal/dto"
	"github.com/msme-awards/adjudication-api/internal/middleware"
	"github.com/msme-awards/adjudication-api/internal/services"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	adjudicator := middleware.GetAccount(c)
	var req dto.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	resp, err := h.reviews.Submit(adjudicator, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to submit review",
		})
	}

	return c.JSON(resp)
}

func (h *ReviewHandler) MyReviews(c *fiber.Ctx) error {
	adjudicator := middleware.GetAccount(c)
	reviews, err := h.reviews.MyReviews(adjudicator.UID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch reviews",
		})
	}
	return c.JSON(fiber.Map{"success": true, "reviews": reviews})
}

func (h *ReviewHandler) MyReview(c *fiber.Ctx) error {
	adjudicator := middleware.GetAccount(c)
	review, err := h.reviews.GetMine(adjudicator.UID, c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch review",
		})
	}
	return c.JSON(fiber.Map{"success": true, "review": review})
}

func (h *ReviewHandler) ApplicationReviews(c *fiber.Ctx) error {
	reviews, summary, err := h.reviews.ListForApplication(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch application reviews",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"reviews": reviews,
		"summary": summary,
	})
}

func (h *ReviewHandler) AllReviewCounts(c *fiber.Ctx) error {
	counts, err := h.reviews.CountsByApplication()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch review counts",
		})
	}
	return c.JSON(fiber.Map{"success": true, "counts": counts})
}

func (h *ReviewHandler) AdjudicationData(c *fiber.Ctx) error {
	data, err := h.reviews.AllData()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch adjudication data",
		})
	}
	return c.JSON(fiber.Map{"data": data})
}
