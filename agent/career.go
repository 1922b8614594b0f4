package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ishan11032005GitHub/career-navigator-backend/compiler"
	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
	"github.com/Ishan11032005GitHub/career-navigator-backend/gateway"
	"github.com/Ishan11032005GitHub/career-navigator-backend/latex"
	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
	"github.com/Ishan11032005GitHub/career-navigator-backend/skills"
)

const careerTimeout = 30 * time.Second

var latexCommandRe = regexp.MustCompile(`\\[a-zA-Z]+`)

// Career orchestrates the gateway, the local skills heuristics and the
// document compiler. One call walks a short state machine: an entry guard
// on resume text, a best-effort sub-classification into analyze vs
// restructure, then the terminal branch.
type Career struct {
	gw       *gateway.Gateway
	compiler *compiler.Compiler
	logger   logging.Logger
}

// NewCareer wires a career agent.
func NewCareer(gw *gateway.Gateway, c *compiler.Compiler, logger logging.Logger) *Career {
	return &Career{gw: gw, compiler: c, logger: logger}
}

// Name implements core.Agent.
func (a *Career) Name() string { return "career" }

// Handle implements core.Agent.
func (a *Career) Handle(ctx context.Context, req core.AgentRequest) core.AgentResult {
	resumeText := strings.TrimSpace(req.ResumeText)
	if resumeText == "" {
		return core.AgentResult{Reply: "⚠️ Please provide your resume text first."}
	}

	cleaned := cleanResumeText(resumeText)

	// Best-effort sub-classifier; a wrong pick is a UX issue, not an error.
	res := a.gw.Invoke(ctx,
		"You are a classifier: respond with 'restructure' or 'analyze'.\nUser: "+req.Message,
		careerTimeout)
	if strings.Contains(strings.ToLower(res), "restructure") {
		return a.restructure(ctx, req.Message, cleaned)
	}
	return a.analyze(ctx, req.Message, resumeText, cleaned, req.JobPosts)
}

// analyze runs the local skills heuristics, optionally ranks the supplied
// postings and asks the gateway for a short actionable reply.
func (a *Career) analyze(ctx context.Context, message, resumeText, cleaned string, posts []core.JobPost) core.AgentResult {
	analysis := skills.Analyze(resumeText)

	var topTitles []string
	if len(posts) > 0 {
		ranked := skills.MatchJobs(analysis.Skills, posts)
		for i, p := range ranked {
			if i == 3 {
				break
			}
			topTitles = append(topTitles, p.Title)
		}
	}

	prompt := fmt.Sprintf(`You are a career coach.
User: %s
Resume: %s
Detected skills: %v
Top jobs: %v
Write a short actionable reply.`, message, clip(cleaned, 4000), analysis.Skills, topTitles)

	reply := a.gw.Invoke(ctx, prompt, careerTimeout)
	return core.AgentResult{Reply: strings.TrimSpace(reply), Intent: "analyze"}
}

// restructure drives the gateway to emit LaTeX, repairs and validates it
// (substituting the built-in template when invalid) and compiles it. The
// reply embeds status, download/preview references and the raw markup.
func (a *Career) restructure(ctx context.Context, message, cleaned string) core.AgentResult {
	code := a.gw.Invoke(ctx,
		"Generate a clean LaTeX resume based on this text:\n"+clip(cleaned, 3000)+
			"\nUser request: "+message,
		careerTimeout)
	code = latex.Fix(code)
	if !latex.IsValid(code) {
		a.logger.Warn("generated latex invalid, using fallback template")
		code = latex.FallbackTemplate()
	}

	base := "resume_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	res, err := a.compiler.Compile(ctx, code, base, cleaned)
	if err != nil {
		// Even the fallback document could not be produced; surface the
		// typesetting log since there is no artifact to inspect.
		a.logger.Error("resume compile failed", "error", err)
		reply := fmt.Sprintf("❌ Failed to generate the resume document: %v", err)
		if res.Log != "" {
			reply += fmt.Sprintf("\n<details><summary>Logs</summary><pre>%s</pre></details>", res.Log)
		}
		return core.AgentResult{Reply: reply, Intent: "restructure"}
	}

	var reply string
	if res.PDFGenerated {
		reply = "✅ Resume successfully restructured!"
	} else {
		reply = "⚠️ LaTeX failed, generating simple PDF."
	}

	previewURL := "/generated_resumes/" + res.PDFName
	downloadURL := "/download-pdf/" + res.PDFName
	reply += fmt.Sprintf(
		"\n\n📥 [Download PDF](%s) | [Preview](%s)"+
			"\n\n---\n<details><summary>LaTeX Code</summary>\n<pre>%s</pre></details>",
		downloadURL, previewURL, code)

	return core.AgentResult{
		Reply:     reply,
		PDFPath:   previewURL,
		LatexCode: code,
		Intent:    "restructure",
	}
}

// cleanResumeText strips LaTeX commands and braces so raw markup in the
// uploaded resume cannot leak into prompts or the fallback document.
func cleanResumeText(text string) string {
	text = latexCommandRe.ReplaceAllString(text, "")
	return strings.NewReplacer("{", "", "}", "").Replace(text)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
