package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ishan11032005GitHub/career-navigator-backend/store"
)

type jobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type applyRequest struct {
	ResumePath string `json:"resume_path"`
}

func jobID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid job id")
	}
	return id, nil
}

func (s *Server) listJobs(c *fiber.Ctx) error {
	jobs, err := s.store.ListJobs()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func (s *Server) createJob(c *fiber.Ctx) error {
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title and company are required")
	}

	id, err := s.store.CreateJob(store.Job{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    req.Location,
		Description: req.Description,
		Link:        req.Link,
		PostedBy:    currentUser(c).Username,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "msg": "Job posted"})
}

func (s *Server) deleteJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	job, err := s.store.JobByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Job not found")
		}
		return err
	}
	if job.PostedBy != currentUser(c).Username {
		return fiber.NewError(fiber.StatusForbidden, "Only the poster can delete a job")
	}
	if err := s.store.DeleteJob(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "Job deleted"})
}

func (s *Server) saveJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if _, err := s.store.JobByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Job not found")
		}
		return err
	}
	if err := s.store.SaveJob(currentUser(c).ID, id); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "Job already saved")
		}
		return err
	}
	return c.JSON(fiber.Map{"msg": "Job saved"})
}

func (s *Server) unsaveJob(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if err := s.store.UnsaveJob(currentUser(c).ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Job not saved")
		}
		return err
	}
	return c.JSON(fiber.Map{"msg": "Job unsaved"})
}

func (s *Server) savedJobs(c *fiber.Ctx) error {
	jobs, err := s.store.SavedJobs(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

func (s *Server) apply(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.ResumePath) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Resume path is required")
	}

	appID, err := s.store.Apply(currentUser(c).ID, id, req.ResumePath)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Job not found")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": appID, "msg": "Application submitted"})
}

func (s *Server) applications(c *fiber.Ctx) error {
	apps, err := s.store.Applications(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applications": apps})
}
