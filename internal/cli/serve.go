// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creachadair/jview/render/htmlview"
	"github.com/creachadair/jview/tree"
	"github.com/creachadair/jview/value"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		depth int
		title string
	)
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Browse the document in a local web page",
		Long: `Serve starts a web server that shows the document as an expandable tree.
Clicking a container toggles it. The expansion state is carried in the
query string of each link, so any view can be bookmarked.

The server also provides /raw, the whole document as indented JSON, and
/healthz for liveness checks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := loggerFromContext(ctx)
			root, err := c.readInput(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Addr
			}
			if !cmd.Flags().Changed("depth") {
				depth = c.cfg.ExpandDepth
			}
			s := &server{
				root:  root,
				depth: depth,
				title: title,
				log:   log,
				html: htmlview.Renderer{
					IndentPx: c.cfg.HTMLIndentPx,
					Minify:   c.cfg.MinifyHTML,
				},
			}
			return s.listen(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen `address`")
	cmd.Flags().IntVar(&depth, "depth", 1, "initial expansion depth (-1 for all)")
	cmd.Flags().StringVar(&title, "title", "JSON", "page title")
	return cmd
}

// A server serves a single document as an expandable tree.
type server struct {
	root  value.Value
	depth int // initial expansion depth
	title string
	html  htmlview.Renderer
	log   *log.Logger
}

// listen serves s on addr until ctx ends.
func (s *server) listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("serving", "url", "http://"+addr+"/")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleTree)
	r.Get("/raw", s.handleRaw)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	return r
}

// logRequests logs each request at debug level after it completes.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"size", humanize.Bytes(uint64(ww.BytesWritten())),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	})
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	st, err := s.stateFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hr := s.html
	hr.ToggleURL = func(p tree.Path) string { return "/?" + encodeState(st.Toggle(p)) }

	var body, page bytes.Buffer
	if err := hr.Render(&body, tree.Visible(s.root, st)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := hr.Page(&page, s.title, body.Bytes()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page.Bytes())
}

func (s *server) handleRaw(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, value.Indent(s.root, "  "))
}

// stateFromQuery decodes the expansion state carried by q. A query without
// the "s" marker selects the initial state of the server.
func (s *server) stateFromQuery(q url.Values) (tree.State, error) {
	if q.Get("s") == "" {
		return tree.ExpandDepth(s.root, s.depth), nil
	}
	var paths []tree.Path
	for _, enc := range q["o"] {
		p, err := tree.DecodePath(enc)
		if err != nil {
			return tree.State{}, fmt.Errorf("invalid state: %w", err)
		}
		paths = append(paths, p)
	}
	return tree.StateOf(paths...), nil
}

// encodeState renders st as a query string decoded by stateFromQuery.
func encodeState(st tree.State) string {
	q := url.Values{"s": {"1"}}
	for _, p := range st.Paths() {
		q.Add("o", p.Encode())
	}
	return q.Encode()
}
