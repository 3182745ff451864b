// Package notifier sends the two emails that follow a reservation
// submission: a summary to the restaurant inbox and an acknowledgement
// to the guest.
//
// The outbound channel state is resolved once at startup and never
// changes afterwards. Send failures are logged and absorbed; they never
// propagate to callers.
package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/casaluna/reservations/internal/config"
	"github.com/casaluna/reservations/internal/model"
)

// State describes the outbound mail channel.
type State int

const (
	// StateDisabled means no SMTP credentials were supplied; sends are skipped.
	StateDisabled State = iota
	// StateUnavailable means credentials were supplied but verification failed.
	StateUnavailable
	// StateReady means the channel is usable.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateUnavailable:
		return "unavailable"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Sender delivers a single email message.
type Sender interface {
	Send(to, subject, text, html string) error
}

// Verifier checks that the SMTP server accepts our credentials.
type Verifier interface {
	Verify() error
}

// Configure resolves the channel state once at startup. Missing
// credentials disable the channel gracefully; a failed verification
// marks it unavailable. Neither is an error.
func Configure(cfg config.Email, v Verifier) State {
	if !cfg.Configured() {
		zlog.Logger.Warn().Msg("smtp credentials not set, email notifications disabled")
		return StateDisabled
	}

	if err := v.Verify(); err != nil {
		zlog.Logger.Warn().Err(err).Msg("smtp verification failed, email notifications unavailable")
		return StateUnavailable
	}

	zlog.Logger.Info().Msg("email notifications ready")
	return StateReady
}

// Result reports which of the two notifications went out.
type Result struct {
	Restaurant bool // summary delivered to the restaurant inbox
	Guest      bool // acknowledgement delivered to the guest
	Skipped    bool // channel not ready, nothing was attempted
}

// Full reports whether both notifications were confirmed sent.
func (r Result) Full() bool {
	return r.Restaurant && r.Guest
}

// Notifier formats and sends reservation notifications through a Sender.
type Notifier struct {
	sender     Sender
	state      State
	restaurant config.Restaurant
}

// New creates a Notifier with the channel state computed at startup.
// The state is immutable for the lifetime of the process.
func New(sender Sender, state State, restaurant config.Restaurant) *Notifier {
	return &Notifier{sender: sender, state: state, restaurant: restaurant}
}

// State returns the outbound channel state.
func (n *Notifier) State() State {
	return n.state
}

// NotifyBoth sends the restaurant summary and the guest acknowledgement
// for one reservation. The two sends are attempted independently: a
// failure of the first does not stop the second. When the channel is
// not ready both sends are skipped without error.
func (n *Notifier) NotifyBoth(rec model.Reservation) Result {
	if n.state != StateReady {
		return Result{Skipped: true}
	}

	var res Result

	if err := n.sendRestaurant(rec); err != nil {
		zlog.Logger.Error().Err(err).Str("id", rec.ID).Msg("failed to send restaurant notification")
	} else {
		res.Restaurant = true
	}

	if err := n.sendGuest(rec); err != nil {
		zlog.Logger.Error().Err(err).Str("id", rec.ID).Str("to", rec.Email).Msg("failed to send guest confirmation")
	} else {
		res.Guest = true
	}

	return res
}

// mailData is the view model shared by both message templates. User
// supplied fields pass through html/template, which escapes them in
// the HTML bodies.
type mailData struct {
	Restaurant string
	Name       string
	Phone      string
	Email      string
	Date       string
	Time       string
	Guests     int
	Notes      string
}

var restaurantTmpl = template.Must(template.New("restaurant").Parse(`<h2>New reservation request</h2>
<p>A new reservation request has arrived.</p>
<ul>
  <li><strong>Name:</strong> {{.Name}}</li>
  <li><strong>Phone:</strong> {{.Phone}}</li>
  <li><strong>Email:</strong> {{.Email}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Guests:</strong> {{.Guests}}</li>
{{- if .Notes}}
  <li><strong>Notes:</strong> {{.Notes}}</li>
{{- end}}
</ul>
`))

var guestTmpl = template.Must(template.New("guest").Parse(`<h2>We received your reservation request</h2>
<p>Thank you for choosing {{.Restaurant}}. We have received your request for:</p>
<ul>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Guests:</strong> {{.Guests}}</li>
</ul>
<p>We will be in touch shortly to confirm your table.</p>
`))

func (n *Notifier) sendRestaurant(rec model.Reservation) error {
	data := n.viewData(rec)

	var text strings.Builder
	fmt.Fprintf(&text, "A new reservation request has arrived.\n\n")
	fmt.Fprintf(&text, "Name: %s\n", data.Name)
	fmt.Fprintf(&text, "Phone: %s\n", data.Phone)
	fmt.Fprintf(&text, "Email: %s\n", data.Email)
	fmt.Fprintf(&text, "Date: %s\n", data.Date)
	fmt.Fprintf(&text, "Time: %s\n", data.Time)
	fmt.Fprintf(&text, "Guests: %d\n", data.Guests)
	if data.Notes != "" {
		fmt.Fprintf(&text, "Notes: %s\n", data.Notes)
	}

	html, err := render(restaurantTmpl, data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New reservation request from %s", rec.Name)

	return n.sender.Send(n.restaurant.Email, subject, text.String(), html)
}

func (n *Notifier) sendGuest(rec model.Reservation) error {
	data := n.viewData(rec)

	var text strings.Builder
	fmt.Fprintf(&text, "Thank you for choosing %s.\n\n", data.Restaurant)
	fmt.Fprintf(&text, "We have received your reservation request for %s at %s, party of %d.\n\n",
		data.Date, data.Time, data.Guests)
	fmt.Fprintf(&text, "We will be in touch shortly to confirm your table.\n")

	html, err := render(guestTmpl, data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your reservation request at %s", n.restaurant.Name)

	return n.sender.Send(rec.Email, subject, text.String(), html)
}

func (n *Notifier) viewData(rec model.Reservation) mailData {
	return mailData{
		Restaurant: n.restaurant.Name,
		Name:       rec.Name,
		Phone:      rec.Phone,
		Email:      rec.Email,
		Date:       formatLongDate(rec.Date),
		Time:       rec.Time,
		Guests:     rec.Guests,
		Notes:      rec.Notes,
	}
}

func render(tmpl *template.Template, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

// formatLongDate renders a YYYY-MM-DD date in long form, e.g.
// "Friday, December 25, 2026". Unparseable input is passed through as-is.
func formatLongDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}

	return t.Format("Monday, January 2, 2006")
}
