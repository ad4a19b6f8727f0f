package webserver

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/edibridge/onboard/internal/catalog"
	"github.com/edibridge/onboard/internal/forms"
	"github.com/edibridge/onboard/internal/models"
)

func (s *Server) registerFormHandlers() {
	s.app.Get("/", s.formPage)
	s.app.Post("/form/company", s.saveCompany)
	s.app.Post("/form/company/edit", s.editCompany)
	s.app.Post("/form/transactions/add", s.addTransaction)
	s.app.Post("/form/transactions/:index/remove", s.removeTransaction)
	s.app.Post("/form/transactions/:index/field", s.updateTransactionField)
	s.app.Post("/form/transactions/:index/files/:field", s.uploadFiles)
	s.app.Post("/form/transactions/:index/files/:field/:fileIndex/remove", s.removeFile)
	s.app.Post("/submit", s.submitForm)
}

type option struct {
	Value string
	Label string
}

var (
	directionOptions = []option{
		{models.DirectionYouToUs, "You send to us"},
		{models.DirectionUsToYou, "We send to you"},
		{models.DirectionBoth, "Both directions"},
	}
	frequencyOptions = []option{
		{models.FrequencyRealTime, "Real-time"},
		{models.FrequencyHourly, "Hourly"},
		{models.FrequencyDaily, "Daily"},
		{models.FrequencyWeekly, "Weekly"},
		{models.FrequencyMonthly, "Monthly"},
		{models.FrequencyOnDemand, "On-demand"},
	}
	requirementOptions = []option{
		{models.RequirementRequired, "Required"},
		{models.RequirementOptional, "Optional"},
	}
)

// formPage renders the whole form. Section 1 is editable in step 1 and shown
// as a summary in step 2; the transaction section appears only in step 2.
func (s *Server) formPage(c *fiber.Ctx) error {
	sess := s.session(c)

	cats, err := catalog.Categories()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "transaction type catalog unavailable")
	}

	status, failReason := sess.Status()

	return s.htmlRender.Render(c, "form", fiber.Map{
		"Step":            int(sess.Step()),
		"Company":         sess.CompanyInfo(),
		"CompanyComplete": sess.CompanyInfoComplete(),
		"Transactions":    sess.Transactions(),
		"Catalog":         cats,
		"Directions":      directionOptions,
		"Frequencies":     frequencyOptions,
		"Requirements":    requirementOptions,
		"Status":          string(status),
		"FailReason":      failReason,
	})
}

// saveCompany stores the posted Section 1 fields and, when the user pressed
// the continue control, advances to the transaction step. The advance is a
// no-op while Section 1 is incomplete.
func (s *Server) saveCompany(c *fiber.Ctx) error {
	sess := s.session(c)

	for _, name := range []string{"companyName", "contactName", "contactEmail", "contactPhone", "autoAccepted"} {
		if err := sess.UpdateCompanyField(name, c.FormValue(name)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	if c.FormValue("action") == "continue" {
		sess.AdvanceToTransactionStep()
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// editCompany returns to step 1 without clearing anything.
func (s *Server) editCompany(c *fiber.Ctx) error {
	s.session(c).ReturnToCompanyStep()
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) addTransaction(c *fiber.Ctx) error {
	s.session(c).AddTransaction(c.FormValue("type"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) removeTransaction(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction index")
	}
	if err := s.session(c).RemoveTransaction(index); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) updateTransactionField(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction index")
	}
	if err := s.session(c).UpdateTransactionField(index, c.FormValue("field"), c.FormValue("value")); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// uploadFiles attaches the uploaded files to the entry, metadata only. The
// new selection replaces the previous one, matching native file input
// semantics.
func (s *Server) uploadFiles(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction index")
	}
	field := c.Params("field")

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid upload")
	}

	var refs []models.FileRef
	for _, fh := range form.File["files"] {
		refs = append(refs, models.FileRef{
			Name:   fh.Filename,
			Size:   fh.Size,
			Handle: uuid.NewString(),
		})
	}

	if err := s.session(c).AttachFiles(index, field, refs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) removeFile(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid transaction index")
	}
	fileIndex, err := c.ParamsInt("fileIndex")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid file index")
	}
	if err := s.session(c).RemoveFile(index, c.Params("field"), fileIndex); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// submitForm runs the submission orchestration and shows the outcome. On
// success the session is discarded and the success page redirects the
// browser to the root after a short delay.
func (s *Server) submitForm(c *fiber.Ctx) error {
	sess := s.session(c)

	outcome := s.orch.Submit(c.UserContext(), sess)

	switch outcome.Status {
	case forms.StatusFailed:
		return s.htmlRender.Render(c, "error", fiber.Map{
			"Message": outcome.Message,
		})
	case forms.StatusSubmitting:
		// A submission is already in flight, just show the form again
		return c.Redirect("/", fiber.StatusSeeOther)
	default:
		s.dropSession(c)
		return s.htmlRender.Render(c, "success", fiber.Map{
			"MessageLines":  strings.Split(outcome.Message, "\n"),
			"Redirect":      outcome.Redirect,
			"RedirectDelay": int(outcome.RedirectDelay.Seconds()),
		})
	}
}
