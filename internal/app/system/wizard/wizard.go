// Package wizard is the multi-step trade-in form: four data-entry steps
// followed by a terminal success step. State is a plain value that the
// reprise feature keeps in a server-side session between requests.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lunicar/lunicar/internal/app/system/inputval"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/plate"
	"github.com/lunicar/lunicar/internal/domain/models"
)

// Step numbers.
const (
	StepVehicle   = 1
	StepCondition = 2
	StepPhotos    = 3
	StepContact   = 4
	StepSuccess   = 5

	// StepCount is the number of data-entry steps.
	StepCount = 4
)

// MinYear is the oldest model year offered.
const MinYear = 1990

// Field length limits, in characters. CommentMaxLen matches the API.
const (
	DefaultMaxLen = 100
	CommentMaxLen = 5000
)

// User-facing errors.
var (
	ErrMissingFields = errors.New("Veuillez remplir tous les champs obligatoires")
	ErrInvalidPlate  = errors.New("Plaque d'immatriculation invalide")
	ErrInvalidValue  = errors.New("Veuillez vérifier les champs en rouge")
	ErrConsent       = errors.New("Veuillez accepter la politique de confidentialité")
	ErrSubmitFailed  = errors.New("Une erreur est survenue. Veuillez réessayer.")
	ErrSubmitted     = errors.New("Votre demande a déjà été envoyée")
	ErrNoSuchFile    = errors.New("Photo introuvable")
)

// StepError reports the fields of a step that failed validation.
type StepError struct {
	Step   int
	Fields []string
	Err    error
}

func (e *StepError) Error() string { return e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// TooLongError reports a value over its field's length limit.
type TooLongError struct {
	Label string
	Max   int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s : %d caractères maximum", e.Label, e.Max)
}

// Kind is how a field is rendered and checked.
type Kind int

const (
	Text Kind = iota
	Select
	Radio
	Email
	Tel
	TextArea
)

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Options     []string
	Placeholder string
	MaxLen      int // zero means DefaultMaxLen

	// check runs on non-empty values after the required/options checks.
	check func(v string) error
}

// Limit returns the maximum length of the field in characters.
func (f Field) Limit() int {
	if f.MaxLen > 0 {
		return f.MaxLen
	}
	return DefaultMaxLen
}

// StepDef describes one data-entry step.
type StepDef struct {
	Number int
	Title  string
	Fields []Field
}

var (
	fuels     = []string{"Essence", "Diesel", "Hybride", "Électrique", "GPL"}
	gearboxes = []string{"Manuelle", "Automatique"}
	grades    = []string{"Excellent", "Bon", "Moyen", "Mauvais"}
	delays    = []string{"Des que possible", "Dans la semaine", "Dans le mois", "Pas pressé"}
	titles    = []string{"M.", "Mme"}
)

// Steps are the data-entry steps in order.
var Steps = []StepDef{
	{
		Number: StepVehicle,
		Title:  "Véhicule",
		Fields: []Field{
			{Name: "plaque", Label: "Plaque d'immatriculation", Kind: Text, Required: true, Placeholder: "AA-123-AA", check: checkPlate},
			{Name: "marque", Label: "Marque", Kind: Text, Required: true, Placeholder: "Ex : Peugeot"},
			{Name: "modele", Label: "Modèle", Kind: Text, Required: true, Placeholder: "Ex : 308"},
			{Name: "annee", Label: "Année", Kind: Select, Required: true, check: checkYear},
			{Name: "kilometrage", Label: "Kilométrage", Kind: Text, Required: true, Placeholder: "Ex : 85000", check: checkMileage},
			{Name: "carburant", Label: "Carburant", Kind: Radio, Required: true, Options: fuels},
			{Name: "boite", Label: "Boîte de vitesses", Kind: Radio, Required: true, Options: gearboxes},
		},
	},
	{
		Number: StepCondition,
		Title:  "État",
		Fields: []Field{
			{Name: "etatExterieur", Label: "État extérieur", Kind: Radio, Required: true, Options: grades},
			{Name: "etatInterieur", Label: "État intérieur", Kind: Radio, Required: true, Options: grades},
			{Name: "etatMecanique", Label: "État mécanique", Kind: Radio, Required: true, Options: grades},
			{Name: "commentaires", Label: "Commentaires", Kind: TextArea, Placeholder: "Rayures, entretien, options...", MaxLen: CommentMaxLen},
		},
	},
	{
		Number: StepPhotos,
		Title:  "Photos & délai",
		Fields: []Field{
			{Name: "delaiVente", Label: "Quand souhaitez-vous vendre ?", Kind: Radio, Required: true, Options: delays},
		},
	},
	{
		Number: StepContact,
		Title:  "Coordonnées",
		Fields: []Field{
			{Name: "civilite", Label: "Civilité", Kind: Radio, Required: true, Options: titles},
			{Name: "nom", Label: "Nom", Kind: Text, Required: true},
			{Name: "prenom", Label: "Prénom", Kind: Text, Required: true},
			{Name: "email", Label: "Email", Kind: Email, Required: true, check: checkEmail},
			{Name: "telephone", Label: "Téléphone", Kind: Tel, Required: true, check: checkPhone},
			{Name: "codePostal", Label: "Code postal", Kind: Text, Required: true, check: checkPostalCode},
		},
	},
}

func checkPlate(v string) error {
	if !plate.IsValid(v) {
		return ErrInvalidPlate
	}
	return nil
}

func checkYear(v string) error {
	y, err := strconv.Atoi(v)
	if err != nil || y < MinYear || y > time.Now().Year()+1 {
		return ErrInvalidValue
	}
	return nil
}

func checkMileage(v string) error {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '.' || r == ' ' {
			return -1
		}
		return r
	}, v)
	if _, err := strconv.ParseUint(digits, 10, 32); err != nil {
		return ErrInvalidValue
	}
	return nil
}

func checkEmail(v string) error {
	if !inputval.IsValidEmail(v) {
		return ErrInvalidValue
	}
	return nil
}

func checkPhone(v string) error {
	if !inputval.IsValidPhone(v) {
		return ErrInvalidValue
	}
	return nil
}

func checkPostalCode(v string) error {
	if !inputval.IsValidPostalCode(v) {
		return ErrInvalidValue
	}
	return nil
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Years returns the model years offered by the annee select, newest first.
func Years(now time.Time) []string {
	years := make([]string, 0, now.Year()-MinYear+1)
	for y := now.Year(); y >= MinYear; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// StepByNumber returns the definition of a data-entry step.
func StepByNumber(n int) (StepDef, bool) {
	if n < 1 || n > len(Steps) {
		return StepDef{}, false
	}
	return Steps[n-1], true
}

func lookupField(name string) (Field, bool) {
	for _, s := range Steps {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Field{}, false
}

// File is a staged photo, already stored under its Name.
type File struct {
	Name     string `json:"name"`     // stored name
	Original string `json:"original"` // client file name
	Size     int64  `json:"size"`
}

// State is the wizard's progress. The zero value is not ready; use New.
type State struct {
	Step      int               `json:"step"`
	Completed []int             `json:"completed,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
	Files     []File            `json:"files,omitempty"`
	LeadID    string            `json:"leadId,omitempty"`
}

// New returns a wizard on step 1.
func New() *State {
	return &State{Step: StepVehicle, Values: map[string]string{}}
}

// Done reports whether the request was submitted.
func (s *State) Done() bool {
	return s.Step == StepSuccess
}

// Value returns a field value.
func (s *State) Value(name string) string {
	return s.Values[name]
}

// Checked reports whether a radio option is selected.
func (s *State) Checked(name, option string) bool {
	return s.Values[name] == option
}

// Set stores a field value. Unknown fields are ignored; values are trimmed
// and cut one character past the field limit, so Validate still reports
// them while the stored state stays bounded.
func (s *State) Set(name, value string) {
	f, ok := lookupField(name)
	if !ok {
		return
	}
	if s.Values == nil {
		s.Values = map[string]string{}
	}
	value = truncate(strings.TrimSpace(value), f.Limit()+1)
	if value == "" {
		delete(s.Values, name)
		return
	}
	s.Values[name] = value
}

// Prefill sets the plate from a landing-page link unless one was entered.
func (s *State) Prefill(plaque string) {
	if plaque == "" || s.Value("plaque") != "" || s.Done() {
		return
	}
	s.Set("plaque", plate.Display(plaque))
}

// Apply stores every field of the current step from get, so that cleared
// inputs and unchecked radios clear the saved value.
func (s *State) Apply(get func(name string) string) {
	def, ok := StepByNumber(s.Step)
	if !ok {
		return
	}
	for _, f := range def.Fields {
		s.Set(f.Name, get(f.Name))
	}
}

// Validate checks the fields of step n.
func (s *State) Validate(n int) error {
	def, ok := StepByNumber(n)
	if !ok {
		return nil
	}
	var missing, invalid []string
	var firstInvalid error
	for _, f := range def.Fields {
		v := s.Values[f.Name]
		switch {
		case v == "":
			if f.Required {
				missing = append(missing, f.Name)
			}
		case f.Kind == Radio && !slices.Contains(f.Options, v):
			missing = append(missing, f.Name)
		case utf8.RuneCountInString(v) > f.Limit():
			invalid = append(invalid, f.Name)
			if firstInvalid == nil {
				firstInvalid = &TooLongError{Label: f.Label, Max: f.Limit()}
			}
		case f.check != nil:
			if err := f.check(v); err != nil {
				invalid = append(invalid, f.Name)
				if firstInvalid == nil {
					firstInvalid = err
				}
			}
		}
	}
	if len(missing) > 0 {
		return &StepError{Step: n, Fields: append(missing, invalid...), Err: ErrMissingFields}
	}
	if len(invalid) > 0 {
		return &StepError{Step: n, Fields: invalid, Err: firstInvalid}
	}
	return nil
}

// Next validates the current step and advances. The departed step is
// marked completed.
func (s *State) Next() error {
	if s.Done() {
		return ErrSubmitted
	}
	if err := s.Validate(s.Step); err != nil {
		return err
	}
	s.markCompleted(s.Step)
	if s.Step < StepCount {
		s.Step++
	}
	return nil
}

// Prev goes back one step; it is a no-op on the first step.
func (s *State) Prev() {
	if s.Done() {
		return
	}
	if s.Step > StepVehicle {
		s.Step--
	}
}

func (s *State) markCompleted(n int) {
	if !slices.Contains(s.Completed, n) {
		s.Completed = append(s.Completed, n)
		slices.Sort(s.Completed)
	}
}

// Progress is the indicator state of one step.
type Progress struct {
	Number    int
	Title     string
	Active    bool
	Completed bool
}

// Progress returns the indicators of every data-entry step.
func (s *State) Progress() []Progress {
	out := make([]Progress, 0, len(Steps))
	for _, def := range Steps {
		out = append(out, Progress{
			Number:    def.Number,
			Title:     def.Title,
			Active:    def.Number == s.Step,
			Completed: s.Done() || slices.Contains(s.Completed, def.Number),
		})
	}
	return out
}

// CheckFile validates a new photo against the staging limits before it is
// stored.
func (s *State) CheckFile(limits photos.Limits, name string, size int64, contentType string) error {
	if s.Done() {
		return ErrSubmitted
	}
	if len(s.Files) >= limits.MaxFiles {
		return &photos.TooManyError{Max: limits.MaxFiles}
	}
	return limits.Check(name, size, contentType)
}

// AddFile stages a stored photo.
func (s *State) AddFile(f File) {
	s.Files = append(s.Files, f)
}

// RemoveFile unstages photo i and returns it so the caller can delete the
// stored blob.
func (s *State) RemoveFile(i int) (File, error) {
	if i < 0 || i >= len(s.Files) {
		return File{}, ErrNoSuchFile
	}
	f := s.Files[i]
	s.Files = slices.Delete(s.Files, i, i+1)
	return f, nil
}

// FileNames returns the stored names of the staged photos.
func (s *State) FileNames() []string {
	names := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		names = append(names, f.Name)
	}
	return names
}

// SubmitFunc persists a request and returns its id.
type SubmitFunc func(ctx context.Context, values map[string]string, photoNames []string) (string, error)

// Submit sends the request. Without consent it fails before fn is called.
// Every step is revalidated; the wizard moves to the first invalid step.
// On success the wizard reaches the success step; on failure it stays put
// and returns ErrSubmitFailed wrapping the cause.
func (s *State) Submit(ctx context.Context, consent bool, fn SubmitFunc) error {
	if s.Done() {
		return ErrSubmitted
	}
	if !consent {
		return ErrConsent
	}
	for _, def := range Steps {
		if err := s.Validate(def.Number); err != nil {
			s.Step = def.Number
			return err
		}
	}
	id, err := fn(ctx, s.Values, s.FileNames())
	if err != nil {
		return &submitError{cause: err}
	}
	s.LeadID = id
	for _, def := range Steps {
		s.markCompleted(def.Number)
	}
	s.Step = StepSuccess
	return nil
}

type submitError struct{ cause error }

func (e *submitError) Error() string { return ErrSubmitFailed.Error() }

func (e *submitError) Unwrap() []error { return []error{ErrSubmitFailed, e.cause} }

// Reference returns the customer-facing reference once submitted.
func (s *State) Reference() string {
	if s.LeadID == "" {
		return ""
	}
	return "REF-" + models.ShortRef(s.LeadID)
}
