package controller

import (
	"errors"
	"net/url"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/serverutils"
	"ai-coursechat-be/internal/service"
	"ai-coursechat-be/pkg/coursedoc"

	"github.com/gofiber/fiber/v2"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	GetStats(ctx *fiber.Ctx) error
	GetLessonContent(ctx *fiber.Ctx) error
	Ingest(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService    service.ICourseService
	publisherService service.IPublisherService
}

func NewCourseController(
	courseService service.ICourseService,
	publisherService service.IPublisherService,
) ICourseController {
	return &courseController{
		courseService:    courseService,
		publisherService: publisherService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	r.Get("/courses", c.GetStats)
	r.Get("/courses/:title/lessons/:number", c.GetLessonContent)
	r.Post("/courses/ingest", c.Ingest)
}

func (c *courseController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.courseService.GetCourseStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get course stats", res))
}

func (c *courseController) GetLessonContent(ctx *fiber.Ctx) error {
	title, err := url.PathUnescape(ctx.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course title")
	}
	number, err := ctx.ParamsInt("number")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "lesson number must be an integer")
	}

	res, err := c.courseService.GetLessonContent(ctx.Context(), title, number)
	if errors.Is(err, service.ErrCourseNotFound) || errors.Is(err, service.ErrLessonNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get lesson content", res))
}

// Ingest parses the submitted document and queues the heavy work (chunking
// and embedding) for the background consumer. Parse warnings are returned
// immediately so the caller can fix the source file.
func (c *courseController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	doc, warnings := coursedoc.Parse(req.Document)
	res := &dto.IngestQueuedResponse{}
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, w.String())
	}
	if doc == nil {
		return fiber.NewError(fiber.StatusBadRequest, "document contains no usable content")
	}
	res.CourseTitle = doc.Title

	if err := c.publisherService.PublishCourseEmbedding(doc); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).
		JSON(serverutils.SuccessResponse("Course ingestion queued", res))
}
