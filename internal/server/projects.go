package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tracklite/tracklite/internal/storage"
)

func (s *Server) listProjects(c echo.Context) error {
	projects, err := s.store.ListProjects(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch projects")
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) getProject(c echo.Context) error {
	project, err := s.store.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch project")
	}
	if project == nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return c.JSON(http.StatusOK, project)
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description"`
	LeadID      string `json:"leadId"`
}

func (s *Server) createProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	project, err := s.store.CreateProject(c.Request().Context(), req.Name, req.Key, req.Description, req.LeadID)
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create project")
	}

	return c.JSON(http.StatusCreated, project)
}

func (s *Server) deleteProject(c echo.Context) error {
	existed, err := s.store.DeleteProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete project")
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
