// internal/app/features/reprise/view.go
package reprise

import (
	"errors"
	"net/http"
	"time"

	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/viewdata"
	"github.com/lunicar/lunicar/internal/app/system/wizard"
)

// FieldView is one input of the current step, ready for the template.
type FieldView struct {
	Name        string
	ID          string
	Label       string
	Widget      string // text, select, radio or textarea
	InputType   string // type attribute of text widgets
	Required    bool
	Placeholder string
	MaxLen      int
	Value       string
	Options     []string
	Invalid     bool
}

// PhotoView is a staged photo.
type PhotoView struct {
	Index    int
	Original string
	SizeKB   int64
}

// WizardVM is the view model of /reprise.
type WizardVM struct {
	viewdata.BaseVM
	State     *wizard.State
	Step      int
	StepTitle string
	Progress  []wizard.Progress
	Fields    []FieldView
	Photos    []PhotoView
	MaxPhotos int
	CanUpload bool
	First     bool
	Last      bool
	Done      bool
	Reference string
	Error     string
}

func newWizardVM(r *http.Request, st *wizard.State, limits photos.Limits, now time.Time, formErr error) WizardVM {
	vm := WizardVM{
		BaseVM:    viewdata.New(r),
		State:     st,
		Step:      st.Step,
		Progress:  st.Progress(),
		MaxPhotos: limits.MaxFiles,
		CanUpload: len(st.Files) < limits.MaxFiles,
		First:     st.Step == wizard.StepVehicle,
		Last:      st.Step == wizard.StepContact,
		Done:      st.Done(),
		Reference: st.Reference(),
	}

	invalid := map[string]bool{}
	if formErr != nil {
		vm.Error = formErr.Error()
		var se *wizard.StepError
		if errors.As(formErr, &se) {
			for _, f := range se.Fields {
				invalid[f] = true
			}
		}
	}

	if def, ok := wizard.StepByNumber(st.Step); ok {
		vm.StepTitle = def.Title
		for _, f := range def.Fields {
			vm.Fields = append(vm.Fields, fieldView(f, st.Value(f.Name), invalid[f.Name], now))
		}
	}
	for i, f := range st.Files {
		vm.Photos = append(vm.Photos, PhotoView{Index: i, Original: f.Original, SizeKB: (f.Size + 1023) / 1024})
	}
	return vm
}

func fieldView(f wizard.Field, value string, invalid bool, now time.Time) FieldView {
	fv := FieldView{
		Name:        f.Name,
		ID:          "f-" + f.Name,
		Label:       f.Label,
		Required:    f.Required,
		Placeholder: f.Placeholder,
		MaxLen:      f.Limit(),
		Value:       value,
		Options:     f.Options,
		Invalid:     invalid,
		Widget:      "text",
		InputType:   "text",
	}
	switch f.Kind {
	case wizard.Select:
		fv.Widget = "select"
		if f.Name == "annee" {
			fv.Options = wizard.Years(now)
		}
	case wizard.Radio:
		fv.Widget = "radio"
	case wizard.TextArea:
		fv.Widget = "textarea"
	case wizard.Email:
		fv.InputType = "email"
	case wizard.Tel:
		fv.InputType = "tel"
	}
	return fv
}
