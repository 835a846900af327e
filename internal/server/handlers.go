package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/autolist/autolist/internal/catalog"
	"github.com/autolist/autolist/internal/listing"
	"github.com/autolist/autolist/internal/logging"
	"github.com/autolist/autolist/internal/session"
)

const userIDKey = "user_id"

func (s *Server) listCatalog(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := s.opts.Catalog
		var list any
		switch kind {
		case catalog.KindBrands:
			list = nonNil(cat.Brands)
		case catalog.KindModels:
			list = nonNil(cat.Models)
		case catalog.KindCarTypes:
			list = nonNil(cat.CarTypes)
		case catalog.KindConditions:
			list = nonNil(cat.Conditions)
		case catalog.KindTransmissions:
			list = nonNil(cat.Transmissions)
		case catalog.KindFuelTypes:
			list = nonNil(cat.FuelTypes)
		case catalog.KindColors:
			list = nonNil(cat.Colors)
		}
		c.JSON(http.StatusOK, list)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *Server) login(c *gin.Context) {
	var creds session.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		if errs := creds.Validate(); errs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials", "fields": errs})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))
	for _, u := range s.opts.Users {
		if strings.ToLower(u.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)) != nil {
			break
		}
		token, err := session.Issue(s.opts.Secret, u.Email, u.Name, u.Email, s.opts.TokenTTL, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}
		s.logger.Info("user logged in", "email", u.Email)
		c.JSON(http.StatusOK, session.LoginResponse{Token: token})
		return
	}

	s.logger.Warn("login rejected", "email", email)
	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no bearer token"})
			return
		}
		sess, err := session.Verify(strings.TrimPrefix(header, "Bearer "), s.opts.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(userIDKey, sess.UserID)
		c.Next()
	}
}

func (s *Server) createListing(c *gin.Context) {
	var body listing.Draft
	bindErr := c.ShouldBindJSON(&body)
	fields, invalid := s.schema.BindingErrors(bindErr)
	if bindErr != nil && !invalid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := s.schema.Decode(body.Values())
	if err != nil {
		var errs listing.FieldErrors
		if errors.As(err, &errs) {
			if fields == nil {
				fields = make(listing.FieldErrors)
			}
			for f, msg := range errs {
				if _, ok := fields[f]; !ok {
					fields[f] = msg
				}
			}
		}
	}
	if len(fields) > 0 || err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	s.mu.Lock()
	l := Listing{
		ID:        s.nextID,
		OwnerID:   c.GetString(userIDKey),
		CreatedAt: time.Now().UTC(),
		Draft:     draft,
	}
	s.nextID++
	s.listings = append(s.listings, l)
	s.mu.Unlock()

	ctx := logging.WithUserID(c.Request.Context(), l.OwnerID)
	s.logger.WithContext(ctx).Info("listing created", "id", l.ID, "title", l.Title)
	c.JSON(http.StatusCreated, l)
}

func (s *Server) listListings(c *gin.Context) {
	c.JSON(http.StatusOK, s.Listings())
}

// Listings returns a copy of the stored listings.
func (s *Server) Listings() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// HashPassword returns a bcrypt hash for a development account.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
