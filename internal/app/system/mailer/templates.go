// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Urgency colours for the requested sale delay badge.
const (
	colorASAP    = "#EF4444"
	colorWeek    = "#F59E0B"
	colorMonth   = "#3B82F6"
	colorDefault = "#6B7280"
)

// UrgencyColor returns the badge colour for a delaiVente value.
func UrgencyColor(delai string) string {
	switch delai {
	case "Des que possible":
		return colorASAP
	case "Dans la semaine":
		return colorWeek
	case "Dans le mois":
		return colorMonth
	default:
		return colorDefault
	}
}

// LeadEmailData contains the data for a new trade-in request notification.
type LeadEmailData struct {
	AppName   string
	Reference string // first 8 characters of the lead id, uppercased

	Plaque, Marque, Modele, Annee, Kilometrage, Carburant, Boite string
	EtatExterieur, EtatInterieur, EtatMecanique, Commentaires    string
	DelaiVente                                                   string
	Civilite, Nom, Prenom, Email, Telephone, CodePostal          string

	// PhotoCIDs are the content ids of the inline photos, in order.
	PhotoCIDs  []string
	ReceivedAt time.Time
}

// ContactEmailData contains the data for a contact form notification.
type ContactEmailData struct {
	AppName    string
	Nom        string
	Email      string
	Telephone  string
	Sujet      string
	Message    string
	ReceivedAt time.Time
}

// LeadEmailSubject returns the subject line for a lead notification.
func LeadEmailSubject(data LeadEmailData) string {
	return fmt.Sprintf("🚗 Nouvelle demande de reprise - %s %s - REF: %s", data.Marque, data.Modele, data.Reference)
}

// ContactEmailSubject returns the subject line for a contact notification.
func ContactEmailSubject(data ContactEmailData) string {
	return "📩 Nouveau message contact - " + data.Sujet
}

// LeadEmail generates both plain text and HTML versions of a lead notification.
func LeadEmail(data LeadEmailData) (textBody, htmlBody string, err error) {
	delai := data.DelaiVente
	if delai == "" {
		delai = "Non specifie"
	}

	var t strings.Builder
	fmt.Fprintf(&t, "Nouvelle demande de reprise - REF: %s\n", data.Reference)
	fmt.Fprintf(&t, "Delai de vente souhaite: %s\n\n", delai)
	fmt.Fprintf(&t, "VEHICULE\nPlaque: %s\nMarque / Modele: %s %s\nAnnee: %s\nKilometrage: %s km\nCarburant: %s\nBoite: %s\n\n",
		data.Plaque, data.Marque, data.Modele, data.Annee, data.Kilometrage, data.Carburant, data.Boite)
	fmt.Fprintf(&t, "ETAT\nExterieur: %s\nInterieur: %s\nMecanique: %s\n", data.EtatExterieur, data.EtatInterieur, data.EtatMecanique)
	if data.Commentaires != "" {
		fmt.Fprintf(&t, "Commentaires: %s\n", data.Commentaires)
	}
	fmt.Fprintf(&t, "\nCONTACT\nNom: %s %s %s\nEmail: %s\nTelephone: %s\nCode postal: %s\n",
		data.Civilite, data.Prenom, data.Nom, data.Email, data.Telephone, data.CodePostal)
	if n := len(data.PhotoCIDs); n > 0 {
		fmt.Fprintf(&t, "\n%d photo(s) jointe(s) a cet email\n", n)
	}

	var buf bytes.Buffer
	err = leadHTMLTmpl.Execute(&buf, struct {
		LeadEmailData
		Delai string
		Color string
		Date  string
		Time  string
	}{data, delai, UrgencyColor(data.DelaiVente), data.ReceivedAt.Format("02/01/2006"), data.ReceivedAt.Format("15:04:05")})
	if err != nil {
		return "", "", err
	}
	return t.String(), buf.String(), nil
}

// ContactEmail generates both plain text and HTML versions of a contact notification.
func ContactEmail(data ContactEmailData) (textBody, htmlBody string, err error) {
	var t strings.Builder
	fmt.Fprintf(&t, "Nouveau message de contact\n\nDe: %s\nEmail: %s\n", data.Nom, data.Email)
	if data.Telephone != "" {
		fmt.Fprintf(&t, "Téléphone: %s\n", data.Telephone)
	}
	fmt.Fprintf(&t, "Sujet: %s\n\n%s\n", data.Sujet, data.Message)

	var buf bytes.Buffer
	err = contactHTMLTmpl.Execute(&buf, struct {
		ContactEmailData
		Date string
		Time string
	}{data, data.ReceivedAt.Format("02/01/2006"), data.ReceivedAt.Format("15:04:05")})
	if err != nil {
		return "", "", err
	}
	return t.String(), buf.String(), nil
}

var funcs = template.FuncMap{
	// nl2br escapes s and turns newlines into <br>.
	"nl2br": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
	// cid builds an inline image reference.
	"cid": func(id string) template.URL {
		return template.URL("cid:" + id)
	},
	// css passes a known colour literal into a style block.
	"css": func(s string) template.CSS {
		return template.CSS(s)
	},
}

const emailStyle = `
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0F172A; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; color: #F59E0B; }
        .content { background: #f8f9fa; padding: 20px; border: 1px solid #ddd; }
        .section { background: white; padding: 15px; margin-bottom: 15px; border-radius: 8px; border-left: 4px solid #3B82F6; }
        .section h3 { margin-top: 0; color: #0F172A; }
        .label { font-weight: bold; color: #666; }
        .footer { background: #0F172A; color: #999; padding: 15px; text-align: center; font-size: 12px; border-radius: 0 0 8px 8px; }`

var leadHTMLTmpl = template.Must(template.New("lead").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>` + emailStyle + `
        .ref { background: #F59E0B; color: #0F172A; padding: 10px 20px; border-radius: 4px; font-weight: bold; display: inline-block; }
        .urgence { background: {{css .Color}}; color: white; padding: 12px 20px; border-radius: 8px; text-align: center; margin-bottom: 15px; }
        .urgence-label { font-size: 12px; text-transform: uppercase; opacity: 0.9; }
        .urgence-value { font-size: 18px; font-weight: bold; margin-top: 4px; }
        .photos img { max-width: 100%; border-radius: 6px; margin-bottom: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.AppName}}</h1>
            <p>Nouvelle demande de reprise</p>
        </div>
        <div class="content">
            <p style="text-align: center;"><span class="ref">REF: {{.Reference}}</span></p>
            <div class="urgence">
                <div class="urgence-label">Delai de vente souhaite</div>
                <div class="urgence-value">{{.Delai}}</div>
            </div>
            <div class="section">
                <h3>🚗 Vehicule</h3>
                <p><span class="label">Plaque:</span> {{.Plaque}}</p>
                <p><span class="label">Marque / Modele:</span> {{.Marque}} {{.Modele}}</p>
                <p><span class="label">Annee:</span> {{.Annee}}</p>
                <p><span class="label">Kilometrage:</span> {{.Kilometrage}} km</p>
                <p><span class="label">Carburant:</span> {{.Carburant}}</p>
                <p><span class="label">Boite:</span> {{.Boite}}</p>
            </div>
            <div class="section">
                <h3>📋 Etat du vehicule</h3>
                <p><span class="label">Exterieur:</span> {{.EtatExterieur}}</p>
                <p><span class="label">Interieur:</span> {{.EtatInterieur}}</p>
                <p><span class="label">Mecanique:</span> {{.EtatMecanique}}</p>
                {{if .Commentaires}}<p><span class="label">Commentaires:</span> {{.Commentaires}}</p>{{end}}
            </div>
            <div class="section">
                <h3>👤 Contact</h3>
                <p><span class="label">Nom:</span> {{.Civilite}} {{.Prenom}} {{.Nom}}</p>
                <p><span class="label">Email:</span> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
                <p><span class="label">Telephone:</span> <a href="tel:{{.Telephone}}">{{.Telephone}}</a></p>
                <p><span class="label">Code postal:</span> {{.CodePostal}}</p>
            </div>
            {{if .PhotoCIDs}}
            <div class="section photos">
                <h3>📷 Photos</h3>
                <p><strong>{{len .PhotoCIDs}} photo(s) jointe(s) a cet email</strong></p>
                {{range .PhotoCIDs}}<img src="{{cid .}}" alt="">{{end}}
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>{{.AppName}} - Reprise automobile professionnelle</p>
            <p>Email recu le {{.Date}} a {{.Time}}</p>
        </div>
    </div>
</body>
</html>`))

var contactHTMLTmpl = template.Must(template.New("contact").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>` + emailStyle + `
        .message-box { background: #f0f0f0; padding: 15px; border-radius: 8px; margin-top: 15px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.AppName}}</h1>
            <p>Nouveau message de contact</p>
        </div>
        <div class="content">
            <div class="section">
                <p><span class="label">De:</span> {{.Nom}}</p>
                <p><span class="label">Email:</span> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
                {{if .Telephone}}<p><span class="label">Téléphone:</span> <a href="tel:{{.Telephone}}">{{.Telephone}}</a></p>{{end}}
                <p><span class="label">Sujet:</span> {{.Sujet}}</p>
                <div class="message-box">
                    <p><span class="label">Message:</span></p>
                    <p>{{nl2br .Message}}</p>
                </div>
            </div>
        </div>
        <div class="footer">
            <p>{{.AppName}} - Reprise automobile professionnelle</p>
            <p>Message reçu le {{.Date}} à {{.Time}}</p>
        </div>
    </div>
</body>
</html>`))
