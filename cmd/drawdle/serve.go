package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/example/drawdle/internal/discovery"
	"github.com/example/drawdle/internal/store"
)

type serveCmd struct {
	*root
	fs *flag.FlagSet

	storeLoc  string
	drawing   string
	addr      string
	advertise bool
	name      string
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	cfg := r.cfg()
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	c := &serveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.storeLoc, "store", cfg.Store, "file or sqlite:path backing the server")
	fs.StringVar(&c.drawing, "drawing", cfg.Drawing, "drawing name inside a sqlite store")
	fs.StringVar(&c.addr, "addr", ":8080", "listen address")
	fs.BoolVar(&c.advertise, "advertise", false, "announce the server over mDNS")
	fs.StringVar(&c.name, "name", "", "mDNS instance name (default host name)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *serveCmd) Program() string {
	return c.subcommand("serve")
}

func (c *serveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *serveCmd) Run() error {
	st, err := openStore(c.storeLoc, c.drawing)
	if err != nil {
		return err
	}
	defer store.Close(st)
	if _, remote := st.(*store.HTTPStore); remote {
		return errors.New("serve needs a local store, not another server")
	}

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", c.addr, err)
	}
	srv := &http.Server{
		Handler:           (&store.Server{Store: st}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if c.advertise {
		port := ln.Addr().(*net.TCPAddr).Port
		ad, err := discovery.Advertise(c.name, port)
		if err != nil {
			ln.Close()
			return err
		}
		defer ad.Close()
		log.Printf("advertising %s on port %d", discovery.ServiceType, port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("serving %s on %s", describe(st), ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
