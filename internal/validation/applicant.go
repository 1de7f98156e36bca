package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/intern-ease/internal/ingestion"
	"github.com/jonathan/intern-ease/internal/types"
)

// ResumeUnreadableMessage is reported when the resume payload is not a decodable data URI
const ResumeUnreadableMessage = "Resume could not be read. Please upload your resume again."

// applicantRules mirrors types.ApplicantInput with the form rules attached.
// The msg tag is the user-facing text for any rule failing on that field.
type applicantRules struct {
	Name           string `json:"name" validate:"required" msg:"Name is required."`
	Email          string `json:"email" validate:"required,email" msg:"Invalid email address."`
	Phone          string `json:"phone" validate:"required" msg:"Phone number is required."`
	GraduationYear string `json:"graduationYear" validate:"min=4" msg:"Graduation year is required."`
	Region         string `json:"region" validate:"required" msg:"Region is required."`
	Skills         string `json:"skills" validate:"min=10" msg:"Please describe your skills in at least 10 characters."`
	Projects       string `json:"projects" validate:"min=10" msg:"Please describe your projects in at least 10 characters."`
	ResumeDataURI  string `json:"resumeDataUri" validate:"startswith=data:" msg:"Resume is required. Please upload your resume."`
	JobDescription string `json:"jobDescription" validate:"min=20" msg:"Job description must be at least 20 characters long."`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	messages     map[string]string
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		})

		messages = make(map[string]string)
		t := reflect.TypeOf(applicantRules{})
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			messages[f.Name] = f.Tag.Get("msg")
		}
	})
	return validate
}

// ValidateApplicant trims the submission and checks every field rule.
// All failures are returned together in field order as a *ValidationError.
func ValidateApplicant(form types.ApplicantInput) (*types.ApplicantInput, error) {
	in := trimmed(form)
	rules := applicantRules(in)

	var fields []FieldError
	if err := engine().Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, &Error{Message: "cannot validate applicant", Cause: err}
		}
		for _, fe := range verrs {
			msg := messages[fe.StructField()]
			if msg == "" {
				msg = FallbackMessage
			}
			fields = append(fields, FieldError{Field: fe.Field(), Message: msg})
		}
	}

	if !hasField(fields, "resumeDataUri") {
		if _, err := ingestion.ParseDataURI(in.ResumeDataURI); err != nil {
			fields = insertInOrder(fields, FieldError{Field: "resumeDataUri", Message: ResumeUnreadableMessage})
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return &in, nil
}

func trimmed(form types.ApplicantInput) types.ApplicantInput {
	return types.ApplicantInput{
		Name:           strings.TrimSpace(form.Name),
		Email:          strings.TrimSpace(form.Email),
		Phone:          strings.TrimSpace(form.Phone),
		GraduationYear: strings.TrimSpace(form.GraduationYear),
		Region:         strings.TrimSpace(form.Region),
		Skills:         strings.TrimSpace(form.Skills),
		Projects:       strings.TrimSpace(form.Projects),
		ResumeDataURI:  strings.TrimSpace(form.ResumeDataURI),
		JobDescription: strings.TrimSpace(form.JobDescription),
	}
}

func hasField(fields []FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// fieldOrder is the form order used for reporting
var fieldOrder = []string{
	"name", "email", "phone", "graduationYear", "region",
	"skills", "projects", "resumeDataUri", "jobDescription",
}

func insertInOrder(fields []FieldError, fe FieldError) []FieldError {
	rank := func(name string) int {
		for i, n := range fieldOrder {
			if n == name {
				return i
			}
		}
		return len(fieldOrder)
	}
	out := make([]FieldError, 0, len(fields)+1)
	inserted := false
	for _, f := range fields {
		if !inserted && rank(f.Field) > rank(fe.Field) {
			out = append(out, fe)
			inserted = true
		}
		out = append(out, f)
	}
	if !inserted {
		out = append(out, fe)
	}
	return out
}
