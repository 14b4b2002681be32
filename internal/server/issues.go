package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tracklite/tracklite/internal/storage"
	"github.com/tracklite/tracklite/internal/types"
)

func (s *Server) listIssues(c echo.Context) error {
	issues, err := s.store.ListIssues(c.Request().Context(), c.QueryParam("projectId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch issues")
	}
	if issues == nil {
		issues = []*types.Issue{}
	}
	return c.JSON(http.StatusOK, issues)
}

func (s *Server) getIssue(c echo.Context) error {
	issue, err := s.store.GetIssue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch issue")
	}
	if issue == nil {
		return echo.NewHTTPError(http.StatusNotFound, "issue not found")
	}
	return c.JSON(http.StatusOK, issue)
}

func (s *Server) createIssue(c echo.Context) error {
	var issue types.Issue
	if err := c.Bind(&issue); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.store.CreateIssue(c.Request().Context(), &issue); err != nil {
		if errors.Is(err, storage.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		// The board contract folds referential failures (unknown project)
		// into a generic 500 rather than a bad-request kind.
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	created, err := s.store.GetIssue(c.Request().Context(), issue.ID)
	if err != nil || created == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch created issue")
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateIssue(c echo.Context) error {
	updates := map[string]interface{}{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	issue, err := s.store.UpdateIssue(c.Request().Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, storage.ErrValidation) || errors.Is(err, storage.ErrProjectNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update issue")
	}
	if issue == nil {
		return echo.NewHTTPError(http.StatusNotFound, "issue not found")
	}

	return c.JSON(http.StatusOK, issue)
}

func (s *Server) deleteIssue(c echo.Context) error {
	existed, err := s.store.DeleteIssue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete issue")
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "issue not found")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) listComments(c echo.Context) error {
	comments, err := s.store.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch comments")
	}
	if comments == nil {
		comments = []*types.Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

type createCommentRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

func (s *Server) createComment(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := s.store.CreateComment(c.Request().Context(), c.Param("id"), req.UserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrIssueNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, storage.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create comment")
		}
	}

	return c.JSON(http.StatusCreated, comment)
}
