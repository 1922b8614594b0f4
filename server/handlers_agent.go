package server

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
	"github.com/Ishan11032005GitHub/career-navigator-backend/store"
)

type chatRequest struct {
	Message    string         `json:"message"`
	ThreadID   string         `json:"thread_id"`
	ResumeText string         `json:"resume_text"`
	JobPosts   []core.JobPost `json:"job_posts"`
}

type saveChatRequest struct {
	Message string `json:"message"`
	Reply   string `json:"reply"`
}

// dispatch runs one agent call and maps dispatcher errors to HTTP codes.
// An empty intent lets the router classify the message.
func (s *Server) dispatch(c *fiber.Ctx, intent core.Intent, req core.AgentRequest) error {
	var (
		result core.AgentResult
		err    error
	)
	if intent == "" {
		result, err = s.dispatcher.Dispatch(c.Context(), req)
	} else {
		result, err = s.dispatcher.DispatchIntent(c.Context(), intent, req)
	}
	if err != nil {
		if errors.Is(err, core.ErrTimeout) {
			return fiber.NewError(fiber.StatusGatewayTimeout, "AI service timeout")
		}
		return err
	}
	return c.JSON(result)
}

func (s *Server) career(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No resume text provided")
	}
	return s.dispatch(c, core.IntentCareer, core.AgentRequest{
		Message:    req.Message,
		ResumeText: req.ResumeText,
		JobPosts:   req.JobPosts,
		ThreadID:   req.ThreadID,
	})
}

func (s *Server) learning(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return s.dispatch(c, core.IntentLearning, core.AgentRequest{
		Message:  req.Message,
		ThreadID: req.ThreadID,
	})
}

// chat is the free-form endpoint: the router decides which agent answers.
func (s *Server) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return s.dispatch(c, "", core.AgentRequest{
		Message:    req.Message,
		ResumeText: req.ResumeText,
		JobPosts:   req.JobPosts,
		ThreadID:   req.ThreadID,
	})
}

func (s *Server) saveChat(kind store.ChatKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveChatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		message := strings.TrimSpace(req.Message)
		reply := strings.TrimSpace(req.Reply)
		if message == "" || reply == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Message and reply required")
		}
		if err := s.store.SaveChat(kind, currentUser(c).ID, message, reply); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"msg": "Chat saved successfully"})
	}
}

func (s *Server) chatHistory(kind store.ChatKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		history, err := s.store.ChatHistory(kind, currentUser(c).ID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"history": history})
	}
}

func (s *Server) clearChat(kind store.ChatKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.store.ClearChat(kind, currentUser(c).ID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"msg": "All chat history cleared"})
	}
}

func (s *Server) downloadPDF(c *fiber.Ctx) error {
	// Basename only: no traversal out of the generated directory.
	safeName := filepath.Base(c.Params("filename"))
	path := filepath.Join(s.generatedDir, safeName)

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+safeName+`"`)
	c.Set("Access-Control-Expose-Headers", fiber.HeaderContentDisposition)
	if err := c.SendFile(path); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "File not found")
	}
	return nil
}
