// Command dnsq is a small DNS lookup client: it builds RFC 1035 query
// messages for the domain names given on the command line, sends them to
// the configured resolvers over UDP, and prints the decoded responses.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/haukened/dnsq/internal/dns/common/clock"
	"github.com/haukened/dnsq/internal/dns/common/log"
	"github.com/haukened/dnsq/internal/dns/common/names"
	"github.com/haukened/dnsq/internal/dns/config"
	"github.com/haukened/dnsq/internal/dns/domain"
	"github.com/haukened/dnsq/internal/dns/gateways/transport"
	"github.com/haukened/dnsq/internal/dns/gateways/wire"
	"github.com/haukened/dnsq/internal/dns/repos/dnscache"
)

const (
	version = "0.1.0-dev"
	appName = "dnsq"
)

// Application holds the wired-together lookup pipeline.
type Application struct {
	config *config.AppConfig
	client *transport.Client
	cache  *dnscache.Cache
	qtype  domain.RRType
	qclass domain.RRClass
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s <domain> [domain...]\n", appName)
		os.Exit(2)
	}

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	log.Debug(map[string]any{
		"version": version,
		"servers": cfg.Servers,
		"qtype":   app.qtype.String(),
		"qclass":  app.qclass.String(),
	}, "Starting lookups")

	ctx := context.Background()
	failed := false
	for _, arg := range args {
		if err := app.Lookup(ctx, arg); err != nil {
			log.Error(map[string]any{"name": arg, "error": err.Error()}, "Lookup failed")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	qtype := domain.RRTypeFromString(cfg.QType)
	if !qtype.IsValid() {
		return nil, fmt.Errorf("unknown query type %q", cfg.QType)
	}
	qclass := domain.ParseRRClass(cfg.QClass)
	if !qclass.IsValid() {
		return nil, fmt.Errorf("unknown query class %q", cfg.QClass)
	}

	codec := wire.NewCodec(logger)

	client, err := transport.NewClient(transport.Options{
		Servers:  cfg.Servers,
		Timeout:  time.Duration(cfg.Timeout) * time.Second,
		Parallel: cfg.Parallel,
		Codec:    codec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver client: %w", err)
	}

	var cache *dnscache.Cache
	if !cfg.DisableCache {
		cache, err = dnscache.New(int(cfg.CacheSize), clock.RealClock{})
		if err != nil {
			return nil, fmt.Errorf("failed to create answer cache: %w", err)
		}
	}

	return &Application{
		config: cfg,
		client: client,
		cache:  cache,
		qtype:  qtype,
		qclass: qclass,
	}, nil
}

// Lookup resolves one domain name argument end to end: canonicalize,
// consult the cache, exchange with a resolver, print, cache.
func (app *Application) Lookup(ctx context.Context, arg string) error {
	name, err := names.Canonical(arg)
	if err != nil {
		return err
	}

	question := domain.Question{Name: name, Type: app.qtype, Class: app.qclass}
	if app.cache != nil {
		if answers, ok := app.cache.Get(question); ok {
			log.Debug(map[string]any{"name": name}, "Answer served from cache")
			printAnswers(name, answers)
			return nil
		}
	}

	query := domain.NewMessage()
	query.SetID(rand.N[uint16](0xFFFF) + 1)
	if err := query.SetFlags(uint16(domain.FlagRecursionDesired)); err != nil {
		return err
	}
	q := query.AddQuestion(name)
	if err := q.SetType(uint16(app.qtype)); err != nil {
		return err
	}
	if err := q.SetClass(uint16(app.qclass)); err != nil {
		return err
	}

	response, err := app.client.Exchange(ctx, query)
	if err != nil {
		return err
	}

	if rcode := response.Header.Flags.RCode(); rcode != 0 {
		fmt.Printf(";; %s: query %s returned %s\n", appName, name, rcode)
	}
	printAnswers(name, response.Answers)
	printSection("AUTHORITY", response.Authority)
	printSection("ADDITIONAL", response.Additionals)

	if app.cache != nil {
		app.cache.Put(question, response.Answers)
	}
	return nil
}

func printAnswers(name string, answers []domain.ResourceRecord) {
	if len(answers) == 0 {
		fmt.Printf(";; no answers for %s\n", name)
		return
	}
	for _, rr := range answers {
		fmt.Println(rr.String())
	}
}

func printSection(title string, records []domain.ResourceRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Printf(";; %s\n", title)
	for _, rr := range records {
		fmt.Println(rr.String())
	}
}
