package main

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/cellularmitosis/retainn/internal/core"
	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/cellularmitosis/retainn/pkg/markdown"
	"github.com/cellularmitosis/retainn/pkg/oid"
)

const (
	defaultHost = "localhost"
	defaultPort = 8080
)

//go:embed templates/*.html
var templatesFS embed.FS

var openBrowser bool

func init() {
	serveCmd.Flags().BoolVarP(&openBrowser, "open", "", false, "Open the web app in the default browser")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [host] [port]",
	Short: "Run the web app",
	Long:  `Review cards from the browser. Defaults are localhost and port 8080.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		host, port, err := parseHostPort(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		router, err := NewRouter(clock.Now())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		url := fmt.Sprintf("http://%s:%d", host, port)
		fmt.Printf("Starting webapp on %s\n", url)
		if openBrowser {
			if err := browser.OpenURL(url); err != nil {
				core.CurrentLogger().Warnf("Unable to open %s: %v", url, err)
			}
		}

		server := &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// parseHostPort accepts no argument, a host, a port, or a host followed by a port.
func parseHostPort(args []string) (string, int, error) {
	switch len(args) {
	case 0:
		return defaultHost, defaultPort, nil
	case 1:
		if port, err := strconv.Atoi(args[0]); err == nil {
			return defaultHost, port, validatePort(port)
		}
		return args[0], defaultPort, nil
	default:
		port, err := strconv.Atoi(args[1])
		if err != nil {
			return "", 0, fmt.Errorf("invalid port %q", args[1])
		}
		return args[0], port, validatePort(port)
	}
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	return nil
}

// webapp serves a single review session started with the server.
type webapp struct {
	sessionStart time.Time
	templates    *template.Template
}

type deckRow struct {
	Deck  *core.Deck
	Cards int
}

type reviewPage struct {
	Card  *core.Card
	Front template.HTML
	Back  template.HTML
}

// NewRouter creates the web app handler.
func NewRouter(sessionStart time.Time) (http.Handler, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	app := &webapp{
		sessionStart: sessionStart,
		templates:    templates,
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)

	router.Get("/", app.listDecks)
	router.Get("/review", app.nextCard)
	router.Get("/cards/{oid}", app.revealCard)
	router.Post("/review/{oid}/{answer}", app.answerCard)
	return router, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		core.CurrentLogger().Infof("%s %s %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (a *webapp) listDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := core.FindDecks()
	if err != nil {
		a.fail(w, err)
		return
	}
	var rows []deckRow
	for _, deck := range decks {
		count, err := core.CountCardsByDeckOID(deck.OID)
		if err != nil {
			a.fail(w, err)
			return
		}
		rows = append(rows, deckRow{Deck: deck, Cards: count})
	}
	a.render(w, "decks.html", map[string]any{"Decks": rows})
}

func (a *webapp) nextCard(w http.ResponseWriter, r *http.Request) {
	card, err := core.NextCard(a.sessionStart)
	if err != nil {
		a.fail(w, err)
		return
	}
	page := reviewPage{Card: card}
	if card != nil {
		page.Front = template.HTML(markdown.ToHTML(card.Front))
	}
	a.render(w, "review.html", page)
}

func (a *webapp) revealCard(w http.ResponseWriter, r *http.Request) {
	cardOID := oid.ParseOrNil(chi.URLParam(r, "oid"))
	if cardOID.IsNil() {
		http.NotFound(w, r)
		return
	}
	card, err := core.LoadCardByOID(cardOID)
	if err != nil {
		a.fail(w, err)
		return
	}
	if card == nil {
		http.NotFound(w, r)
		return
	}
	a.render(w, "review.html", reviewPage{
		Card:  card,
		Front: template.HTML(markdown.ToHTML(card.Front)),
		Back:  template.HTML(markdown.ToHTML(card.Back)),
	})
}

func (a *webapp) answerCard(w http.ResponseWriter, r *http.Request) {
	answer, err := core.ParseAnswer(chi.URLParam(r, "answer"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cardOID := oid.ParseOrNil(chi.URLParam(r, "oid"))
	if cardOID.IsNil() {
		http.NotFound(w, r)
		return
	}
	card, err := core.LoadCardByOID(cardOID)
	if err != nil {
		a.fail(w, err)
		return
	}
	if card == nil {
		http.NotFound(w, r)
		return
	}
	if _, err := core.Review(card.OID, answer); err != nil {
		a.fail(w, err)
		return
	}
	http.Redirect(w, r, "/review", http.StatusFound)
}

func (a *webapp) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		core.CurrentLogger().Warnf("Unable to render %s: %v", name, err)
	}
}

func (a *webapp) fail(w http.ResponseWriter, err error) {
	core.CurrentLogger().Warnf("%v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
