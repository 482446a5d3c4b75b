// Package unitapi serves the unit engine over HTTP: catalog listing, unit
// details, conversion of catalog and monitoring metric units, expression
// evaluation and the regional convention. Prometheus metrics are optional.
package unitapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	cclog "github.com/ClusterCockpit/cc-unit-engine/internal/ccLogger"
	unitstats "github.com/ClusterCockpit/cc-unit-engine/internal/unitStats"
	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
	metricunits "github.com/ClusterCockpit/cc-unit-engine/pkg/metricUnits"
	unitexpr "github.com/ClusterCockpit/cc-unit-engine/pkg/unitExpr"
)

type UnitApiConfig struct {
	Host           string `json:"bindhost"`
	Port           string `json:"port"`
	PublishMetrics bool   `json:"metrics"`

	// Maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout string `json:"idle_timeout"`
	idleTimeout time.Duration
}

type UnitApi struct {
	name      string
	config    UnitApiConfig
	catalog   *ccunits.Catalog
	evaluator *unitexpr.Evaluator
	stats     *unitstats.Stats
	router    *mux.Router
	server    *http.Server
	lock      sync.Mutex // serializes region switches, lookups and evaluations
	wg        sync.WaitGroup
}

type unitResponse struct {
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Html      string    `json:"html"`
	Xml       string    `json:"xml"`
	Exponents []float32 `json:"exponents"`
	Factors   []float64 `json:"factors"`
}

type quantityResponse struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Text  string  `json:"text"`
}

type regionRequest struct {
	Region string `json:"region"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates the API for the evaluator's catalog. stats may be nil.
func New(config json.RawMessage, evaluator *unitexpr.Evaluator, stats *unitstats.Stats) (*UnitApi, error) {
	a := &UnitApi{
		name:      "UnitApi",
		catalog:   evaluator.Catalog(),
		evaluator: evaluator,
		stats:     stats,
	}
	a.config.Host = "localhost"
	a.config.Port = "8080"
	a.config.IdleTimeout = "120s"
	if len(config) > 0 {
		if err := json.Unmarshal(config, &a.config); err != nil {
			cclog.ComponentError(a.name, "Error reading config:", err.Error())
			return nil, err
		}
	}
	if len(a.config.Port) == 0 {
		return nil, errors.New("not all configuration variables set required by UnitApi")
	}
	if len(a.config.IdleTimeout) > 0 {
		t, err := time.ParseDuration(a.config.IdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid idle_timeout '%s': %w", a.config.IdleTimeout, err)
		}
		a.config.idleTimeout = t
	}

	a.router = mux.NewRouter()
	a.router.HandleFunc("/units", a.listUnits).Methods(http.MethodGet)
	a.router.HandleFunc("/units/{name}", a.getUnit).Methods(http.MethodGet)
	a.router.HandleFunc("/convert", a.convert).Methods(http.MethodGet)
	a.router.HandleFunc("/metricunit", a.metricUnit).Methods(http.MethodGet)
	a.router.HandleFunc("/eval", a.eval).Methods(http.MethodGet, http.MethodPost)
	a.router.HandleFunc("/region", a.getRegion).Methods(http.MethodGet)
	a.router.HandleFunc("/region", a.setRegion).Methods(http.MethodPut, http.MethodPost)
	if a.config.PublishMetrics && stats != nil {
		a.router.Path("/metrics").Handler(stats.Handler())
	}

	addr := fmt.Sprintf("%s:%s", a.config.Host, a.config.Port)
	a.server = &http.Server{
		Addr:        addr,
		Handler:     a.router,
		IdleTimeout: a.config.idleTimeout,
	}
	return a, nil
}

func (a *UnitApi) Handler() http.Handler {
	return a.router
}

func (a *UnitApi) Start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		cclog.ComponentPrint(a.name, "Listening on", a.server.Addr)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			cclog.ComponentError(a.name, err.Error())
		}
		cclog.ComponentDebug(a.name, "SERVER DONE")
	}()
}

func (a *UnitApi) Close() {
	cclog.ComponentDebug(a.name, "CLOSE")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Shutdown(ctx)
	a.wg.Wait()
}

// SetRegion switches the catalog while no request is evaluated
func (a *UnitApi) SetRegion(r ccunits.Region) {
	a.lock.Lock()
	a.catalog.SetRegion(r)
	a.lock.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		cclog.ComponentError("UnitApi", "Failed to encode response:", err.Error())
	}
}

// writeError maps unknown units to 404 and every other failure to 400
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, ccunits.ErrUnitNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func outputKind(r *http.Request) (ccunits.OutputKind, error) {
	return ccunits.ParseOutputKind(r.URL.Query().Get("format"))
}

func newQuantityResponse(q unitexpr.Quantity, kind ccunits.OutputKind) quantityResponse {
	return quantityResponse{
		Value: q.Value,
		Unit:  q.Unit.Text(),
		Text:  q.Format(kind),
	}
}

func (a *UnitApi) listUnits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Keys())
}

func (a *UnitApi) getUnit(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	a.lock.Lock()
	u, err := a.catalog.Get(name)
	a.lock.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := unitResponse{
		Name:      name,
		Text:      u.Text(),
		Html:      u.Html(),
		Xml:       u.Xml(),
		Exponents: u.Exponents(),
		Factors:   make([]float64, u.Len()),
	}
	for i := range resp.Factors {
		resp.Factors[i] = u.Factor(ccunits.Dimension(i))
	}
	writeJSON(w, http.StatusOK, resp)
}

// queryValue returns the value parameter, 1 if it is missing
func queryValue(r *http.Request) (float64, error) {
	v := r.URL.Query().Get("value")
	if len(v) == 0 {
		return 1, nil
	}
	value, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value '%s'", v)
	}
	return value, nil
}

func (a *UnitApi) convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	kind, err := outputKind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	value, err := queryValue(r)
	if err != nil {
		writeError(w, err)
		return
	}

	a.lock.Lock()
	q, err := unitexpr.NewQuantity(a.catalog, value, query.Get("from"))
	var to *ccunits.Unit
	if err == nil {
		to, err = a.catalog.Get(query.Get("to"))
	}
	a.lock.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	converted, err := unitexpr.Convert(q, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuantityResponse(converted, kind))
}

// metricUnit expresses a monitoring metric value like "2400 MHz" as a
// quantity, converted to the catalog unit given in "to" if there is one
func (a *UnitApi) metricUnit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	kind, err := outputKind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	value, err := queryValue(r)
	if err != nil {
		writeError(w, err)
		return
	}

	a.lock.Lock()
	from, err := metricunits.Lookup(a.catalog, query.Get("unit"))
	var to *ccunits.Unit
	if err == nil && len(query.Get("to")) > 0 {
		to, err = a.catalog.Get(query.Get("to"))
	}
	a.lock.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	q := unitexpr.Quantity{Value: value, Unit: from}
	if to != nil {
		if q, err = unitexpr.Convert(q, to); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, newQuantityResponse(q, kind))
}

func (a *UnitApi) eval(w http.ResponseWriter, r *http.Request) {
	kind, err := outputKind(r)
	if err != nil {
		writeError(w, err)
		return
	}
	expr := r.URL.Query().Get("expr")
	if r.Method == http.MethodPost {
		var body struct {
			Expr string `json:"expr"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, fmt.Errorf("invalid request body: %w", err))
			return
		}
		expr = body.Expr
	}

	a.lock.Lock()
	q, err := a.evaluator.Eval(r.Context(), expr)
	a.lock.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuantityResponse(q, kind))
}

func (a *UnitApi) getRegion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, regionRequest{Region: a.catalog.Region().String()})
}

func (a *UnitApi) setRegion(w http.ResponseWriter, r *http.Request) {
	var req regionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	region, err := ccunits.ParseRegion(req.Region)
	if err != nil {
		writeError(w, err)
		return
	}
	a.SetRegion(region)
	cclog.ComponentInfo(a.name, "Region set to", region.String())
	writeJSON(w, http.StatusOK, regionRequest{Region: region.String()})
}
