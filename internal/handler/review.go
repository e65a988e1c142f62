package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/repository"
)

// ReviewHandler serves the public review feed and review submission.
type ReviewHandler struct {
	Reviews  *repository.ReviewRepo
	Packages *repository.PackageRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo, packages *repository.PackageRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Packages: packages}
}

// ListReviews serves every review with reviewer and package names,
// newest first.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	items, err := h.Reviews.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("reviews: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"page": "reviews", "items": items})
}

type submitReviewRequest struct {
	PackageID string `json:"package_id" form:"package_id"`
	Rating    string `json:"rating" form:"rating"`
	Comment   string `json:"comment" form:"comment"`
}

// SubmitReview records one review per user per package. The duplicate
// check and the insert are separate statements, so two concurrent submits
// by the same user can both land; the constraint is enforced per request,
// not by the schema.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	ident, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	comment := strings.TrimSpace(req.Comment)
	if req.PackageID == "" || req.Rating == "" || comment == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please provide all required fields"})
	}

	packageID, err := strconv.ParseUint(req.PackageID, 10, 64)
	if err != nil || packageID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid package id"})
	}
	rating, err := strconv.Atoi(req.Rating)
	if err != nil || rating < 1 || rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if _, err := h.Packages.GetByID(ctx, packageID); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		c.Logger().Errorf("submit review: load package %d: %v", packageID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not submit review"})
	}

	if _, err := h.Reviews.CreateOnce(ctx, ident.UserID, packageID, rating, comment); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "you have already reviewed this package"})
		}
		c.Logger().Errorf("submit review: insert: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not submit review"})
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/package/%d?flash=review_submitted", packageID))
}
