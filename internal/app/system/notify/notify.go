// Package notify sends the back-office notification emails for new
// trade-in requests and contact messages. Sends run in the background;
// callers never wait for SMTP and a failed send is only logged.
package notify

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/lunicar/lunicar/internal/app/system/mailer"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// Sender delivers one email. Implemented by *mailer.Mailer.
type Sender interface {
	Send(email mailer.Email) error
}

// Config holds the notification settings.
type Config struct {
	To      string // back-office inbox
	AppName string
}

// Notifier dispatches notification emails on background goroutines.
type Notifier struct {
	cfg    Config
	mail   Sender
	blobs  photos.Blobs
	logger *zap.Logger
	now    func() time.Time

	wg sync.WaitGroup
}

// New creates a Notifier. blobs is used to attach lead photos.
func New(cfg Config, mail Sender, blobs photos.Blobs, logger *zap.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		mail:   mail,
		blobs:  blobs,
		logger: logger,
		now:    time.Now,
	}
}

// LeadSubmitted emails the back office about a new trade-in request,
// with its photos attached inline.
func (n *Notifier) LeadSubmitted(lead models.Lead) {
	n.dispatch("lead", func(ctx context.Context) error {
		email, err := n.leadEmail(ctx, lead)
		if err != nil {
			return err
		}
		return n.mail.Send(email)
	})
}

// ContactReceived emails the back office about a contact message.
func (n *Notifier) ContactReceived(msg models.ContactMessage) {
	n.dispatch("contact", func(ctx context.Context) error {
		data := mailer.ContactEmailData{
			AppName:    n.cfg.AppName,
			Nom:        msg.Nom,
			Email:      msg.Email,
			Telephone:  msg.Telephone,
			Sujet:      msg.Sujet,
			Message:    msg.Message,
			ReceivedAt: n.now(),
		}
		text, html, err := mailer.ContactEmail(data)
		if err != nil {
			return err
		}
		return n.mail.Send(mailer.Email{
			To:       n.cfg.To,
			Subject:  mailer.ContactEmailSubject(data),
			TextBody: text,
			HTMLBody: html,
		})
	})
}

// Wait blocks until in-flight sends finish or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) dispatch(kind string, send func(ctx context.Context) error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := send(ctx); err != nil {
			n.logger.Error("notification email failed", zap.String("kind", kind), zap.Error(err))
		}
	}()
}

func (n *Notifier) leadEmail(ctx context.Context, lead models.Lead) (mailer.Email, error) {
	var inline []mailer.Inline
	var cids []string
	for i, name := range lead.Photos {
		data, err := photos.Read(ctx, n.blobs, name)
		if err != nil {
			n.logger.Warn("photo not attached", zap.String("photo", name), zap.Error(err))
			continue
		}
		idx := strconv.Itoa(i + 1)
		cid := "photo" + idx
		inline = append(inline, mailer.Inline{
			Filename:    "photo_" + idx + filepath.Ext(name),
			ContentID:   cid,
			ContentType: photos.ContentType(name),
			Data:        data,
		})
		cids = append(cids, cid)
	}

	data := mailer.LeadEmailData{
		AppName:       n.cfg.AppName,
		Reference:     models.ShortRef(lead.ID),
		Plaque:        lead.Plaque,
		Marque:        lead.Marque,
		Modele:        lead.Modele,
		Annee:         lead.Annee,
		Kilometrage:   lead.Kilometrage,
		Carburant:     lead.Carburant,
		Boite:         lead.Boite,
		EtatExterieur: lead.EtatExterieur,
		EtatInterieur: lead.EtatInterieur,
		EtatMecanique: lead.EtatMecanique,
		Commentaires:  lead.Commentaires,
		DelaiVente:    lead.DelaiVente,
		Civilite:      lead.Civilite,
		Nom:           lead.Nom,
		Prenom:        lead.Prenom,
		Email:         lead.Email,
		Telephone:     lead.Telephone,
		CodePostal:    lead.CodePostal,
		PhotoCIDs:     cids,
		ReceivedAt:    n.now(),
	}
	text, html, err := mailer.LeadEmail(data)
	if err != nil {
		return mailer.Email{}, err
	}
	return mailer.Email{
		To:       n.cfg.To,
		Subject:  mailer.LeadEmailSubject(data),
		TextBody: text,
		HTMLBody: html,
		Inline:   inline,
	}, nil
}
