package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Amansingh-afk/edgehdc"
	"github.com/Amansingh-afk/edgehdc/config"
	"github.com/Amansingh-afk/edgehdc/encode"
	"github.com/Amansingh-afk/edgehdc/hdc"
	"github.com/Amansingh-afk/edgehdc/sensor"
	"github.com/Amansingh-afk/edgehdc/serial"
	"github.com/Amansingh-afk/edgehdc/store"
)

// parseFlags parses the shared -config flag and returns the loaded
// configuration with the remaining positional arguments. loaded reports
// whether a configuration file was given.
func parseFlags(name string, args []string) (cfg config.Config, rest []string, loaded bool, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, false, err
	}
	if *path == "" {
		return config.Default(), fs.Args(), false, nil
	}
	cfg, err = config.Load(*path)
	return cfg, fs.Args(), true, err
}

func runEncode(args []string, out io.Writer) error {
	cfg, rest, loaded, err := parseFlags("encode", args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New("encode: at least one reading is required")
	}
	if loaded && len(rest) != len(cfg.Channels) {
		return errors.Errorf("encode: got %d readings, config has %d channels", len(rest), len(cfg.Channels))
	}

	values := make([]uint16, len(rest))
	for i, arg := range rest {
		raw, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			return errors.Wrapf(err, "encode: reading %q", arg)
		}
		if values[i], err = sensor.Filter(uint16(raw)); err != nil {
			return err
		}
	}

	var hv hdc.Vector
	// With a config the readings are bound to the same roles stream uses.
	if len(values) == 1 && !loaded {
		err = encode.Sensor(&hv, values[0])
	} else {
		err = encode.MultiChannel(&hv, values, encode.Basis(len(values), cfg.Seed))
	}
	if err != nil {
		return err
	}
	return serial.NewWriter(out).Write(&hv)
}

func runSigned(args []string, out io.Writer) error {
	_, rest, _, err := parseFlags("signed", args)
	if err != nil {
		return err
	}
	if len(rest) != 3 {
		return errors.New("signed: usage: signed <value> <min> <max>")
	}
	var n [3]int16
	for i, arg := range rest {
		v, err := strconv.ParseInt(arg, 10, 16)
		if err != nil {
			return errors.Wrapf(err, "signed: %q", arg)
		}
		n[i] = int16(v)
	}

	var hv hdc.Vector
	if err := encode.Signed(&hv, n[0], n[1], n[2]); err != nil {
		return err
	}
	return serial.NewWriter(out).Write(&hv)
}

func runCompare(args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("compare: usage: compare <hex> <hex>")
	}
	a, err := hdc.ParseHex(args[0])
	if err != nil {
		return err
	}
	b, err := hdc.ParseHex(args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "hamming=%d similarity=%d\n", hdc.Hamming(&a, &b), hdc.Similarity(&a, &b))
	return err
}

// lineSampler serves the fields of the current input line as channel samples.
// runStream only fills it with lines holding exactly one field per channel.
type lineSampler struct {
	index  map[uint8]int
	fields []uint16
}

func (s *lineSampler) Read(channel uint8) (uint16, error) {
	i, ok := s.index[channel]
	if !ok || i >= len(s.fields) {
		return sensor.ErrorValue, nil
	}
	return s.fields[i], nil
}

func runStream(args []string, in io.Reader, out io.Writer) error {
	cfg, _, _, err := parseFlags("stream", args)
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	// Each input line holds one sample per configured channel, in order.
	src := &lineSampler{index: make(map[uint8]int, len(cfg.Channels))}
	for i, ch := range cfg.Channels {
		src.index[ch] = i
	}
	opts = append(opts, edgehdc.WithLogger(log))

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, edgehdc.WithRegisterer(reg))
		go serveMetrics(cfg.MetricsAddr, reg, log)
	}
	enc := edgehdc.New(src, opts...)

	ctx := context.Background()
	var db *store.Store
	if cfg.Database != "" {
		if db, err = store.Open(ctx, cfg.Database); err != nil {
			return err
		}
		defer db.Close()
	}

	w := serial.NewWriter(out)
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(cfg.Channels) {
			log.WithFields(logrus.Fields{
				"line":     line,
				"fields":   len(fields),
				"channels": len(cfg.Channels),
			}).Warn("skipping malformed sample line")
			continue
		}
		src.fields = src.fields[:0]
		for _, f := range fields {
			v, err := strconv.ParseUint(f, 10, 16)
			if err != nil {
				return errors.Wrapf(err, "stream: line %d", line)
			}
			src.fields = append(src.fields, uint16(v))
		}

		var hv hdc.Vector
		values, err := enc.Encode(&hv)
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("skipping sample set")
			continue
		}
		if err := w.Write(&hv); err != nil {
			return err
		}
		if db != nil {
			if _, err := db.Append(ctx, store.Record{Values: values, Vector: hv}); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "stream: read")
	}

	s := enc.Stats()
	log.WithFields(logrus.Fields{
		"encoded":   s.Encoded,
		"failed":    s.Failed,
		"saturated": s.Saturated,
	}).Info("stream finished")
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log logrus.FieldLogger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.WithField("addr", addr).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("metrics server stopped")
	}
}

func runLog(args []string, out io.Writer) error {
	cfg, rest, _, err := parseFlags("log", args)
	if err != nil {
		return err
	}
	if cfg.Database == "" {
		return errors.New("log: no database configured")
	}
	n := 10
	if len(rest) > 0 {
		if n, err = strconv.Atoi(rest[0]); err != nil {
			return errors.Wrapf(err, "log: count %q", rest[0])
		}
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	recs, err := db.Recent(ctx, n)
	if err != nil {
		return err
	}
	for _, r := range recs {
		vals := make([]string, len(r.Values))
		for i, v := range r.Values {
			vals[i] = strconv.Itoa(int(v))
		}
		if _, err := fmt.Fprintf(out, "%d\t%s\t%s\t%s\n",
			r.Seq, r.At.UTC().Format("2006-01-02T15:04:05.000Z"), strings.Join(vals, ","), r.Vector); err != nil {
			return err
		}
	}
	return nil
}
