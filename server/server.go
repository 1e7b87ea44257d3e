// Package server serves problems from a catalog over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/sarchlab/vmquiz/datarecording"
	"github.com/sarchlab/vmquiz/problem"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// maxSeedSize limits the size of a posted seed.
const maxSeedSize = 1 << 16

// Server turns a problem catalog into a web service. Every generated problem
// is recorded in the store and can be fetched again by its ID.
type Server struct {
	catalog    *problem.Catalog
	store      datarecording.Store
	portNumber int
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates a new Server.
func NewServer(catalog *problem.Catalog, store datarecording.Store) *Server {
	s := &Server{
		catalog: catalog,
		store:   store,
	}

	s.router = s.routes()

	return s
}

// WithPortNumber sets the port number of the server.
func (s *Server) WithPortNumber(portNumber int) *Server {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the problem server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	s.portNumber = portNumber

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/types", s.listTypes).Methods(http.MethodGet)
	r.HandleFunc("/api/types/{name}/seed", s.randomSeed).
		Methods(http.MethodGet)
	r.HandleFunc("/api/types/{name}/problems", s.createProblem).
		Methods(http.MethodPost)
	r.HandleFunc("/api/problems", s.listProblems).Methods(http.MethodGet)
	r.HandleFunc("/api/problems/{id}", s.showProblem).Methods(http.MethodGet)
	r.HandleFunc("/api/problems/{id}/details", s.problemDetails).
		Methods(http.MethodGet)
	r.HandleFunc("/api/resource", s.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", s.collectProfile).Methods(http.MethodGet)

	return r
}

// StartServer starts serving in the background and returns the URL of the
// server.
func (s *Server) StartServer() string {
	listener, err := net.Listen("tcp", s.listenAddress())
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Serving problems at %s\n", url)

	s.httpServer = &http.Server{Handler: s.router}

	go func() {
		err := s.httpServer.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return url
}

// Shutdown stops a server started by StartServer, waiting for the requests in
// flight to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// listenAddress returns the address to listen on. Ports set by
// WithPortNumber are used as is; otherwise the system picks a free port.
func (s *Server) listenAddress() string {
	if s.portNumber >= 1000 {
		return ":" + strconv.Itoa(s.portNumber)
	}

	return ":0"
}

func (s *Server) listTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Names())
}

func (s *Server) randomSeed(w http.ResponseWriter, r *http.Request) {
	entry := s.findTypeOr404(w, mux.Vars(r)["name"])
	if entry == nil {
		return
	}

	writeJSON(w, http.StatusOK, entry.RandomSeed())
}

type createProblemRsp struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Seed    any    `json:"seed"`
	Problem any    `json:"problem"`
}

func (s *Server) createProblem(w http.ResponseWriter, r *http.Request) {
	entry := s.findTypeOr404(w, mux.Vars(r)["name"])
	if entry == nil {
		return
	}

	seed, err := s.seedFromRequest(entry, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := entry.Generate(seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := datarecording.NewRecord(entry.Name(), seed, p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.store.Record(rec)

	writeJSON(w, http.StatusCreated, createProblemRsp{
		ID:      rec.ID,
		Type:    rec.Type,
		Seed:    seed,
		Problem: p,
	})
}

// seedFromRequest decodes the seed in the request body, or draws a random
// seed if the body is empty.
func (s *Server) seedFromRequest(
	entry problem.Entry,
	r *http.Request,
) (any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSeedSize))
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return entry.RandomSeed(), nil
	}

	return entry.DecodeSeed(body)
}

type listProblemsRsp struct {
	Total    int                           `json:"total"`
	Problems []datarecording.ProblemRecord `json:"problems"`
}

func (s *Server) listProblems(w http.ResponseWriter, r *http.Request) {
	params, err := s.problemsParseParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	records, total, err := s.store.Query(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, listProblemsRsp{
		Total:    total,
		Problems: records,
	})
}

func (*Server) problemsParseParams(
	r *http.Request,
) (datarecording.QueryParams, error) {
	params := datarecording.QueryParams{
		OrderBy: "CreatedAt DESC",
	}

	typeName := r.URL.Query().Get("type")
	if typeName != "" {
		params.Where = "Type = ?"
		params.Args = []any{typeName}
	}

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "0"
	}
	limitNumber, err := strconv.Atoi(limitStr)
	if err != nil || limitNumber < 0 {
		return params, fmt.Errorf("invalid limit: %q", limitStr)
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		offsetStr = "0"
	}
	offsetNumber, err := strconv.Atoi(offsetStr)
	if err != nil || offsetNumber < 0 {
		return params, fmt.Errorf("invalid offset: %q", offsetStr)
	}

	params.Limit = limitNumber
	params.Offset = offsetNumber

	return params, nil
}

func (s *Server) showProblem(w http.ResponseWriter, r *http.Request) {
	rec := s.findRecordOr404(w, r)
	if rec == nil {
		return
	}

	showSolution := false
	if v := r.URL.Query().Get("solution"); v != "" {
		var err error
		showSolution, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest,
				fmt.Errorf("invalid solution flag: %q", v))
			return
		}
	}

	entry := s.findTypeOr404(w, rec.Type)
	if entry == nil {
		return
	}

	p, err := entry.DecodeProblem([]byte(rec.Problem))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	buf := new(bytes.Buffer)
	err = entry.Render(buf, p, showSolution)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = w.Write(buf.Bytes())
	dieOnErr(err)
}

func (s *Server) problemDetails(w http.ResponseWriter, r *http.Request) {
	rec := s.findRecordOr404(w, r)
	if rec == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(rec)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (s *Server) findTypeOr404(
	w http.ResponseWriter,
	name string,
) problem.Entry {
	entry, err := s.catalog.Lookup(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil
	}

	return entry
}

func (s *Server) findRecordOr404(
	w http.ResponseWriter,
	r *http.Request,
) *datarecording.ProblemRecord {
	rec, err := s.store.Find(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, datarecording.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, err)
		return nil
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil
	}

	return &rec
}

type resourceRsp struct {
	CPUPercent   float64 `json:"cpu_percent"`
	MemorySize   uint64  `json:"memory_size"`
	NumGoroutine int     `json:"num_goroutine"`
	NumTypes     int     `json:"num_types"`
}

func (s *Server) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rsp := resourceRsp{
		NumGoroutine: runtime.NumGoroutine(),
		NumTypes:     len(s.catalog.Names()),
	}

	rsp.CPUPercent, err = proc.CPUPercent()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	rsp.MemorySize = mem.RSS

	writeJSON(w, http.StatusOK, rsp)
}

const (
	defaultProfileDuration = time.Second
	maxProfileDuration     = 30 * time.Second
)

// profileDuration reads the optional duration parameter, such as "250ms".
func profileDuration(r *http.Request) (time.Duration, error) {
	v := r.URL.Query().Get("duration")
	if v == "" {
		return defaultProfileDuration, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 || d > maxProfileDuration {
		return 0, fmt.Errorf("invalid duration: %q", v)
	}

	return d, nil
}

// collectProfile samples the CPU while the server keeps generating problems
// and returns the parsed profile.
func (s *Server) collectProfile(w http.ResponseWriter, r *http.Request) {
	d, err := profileDuration(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var raw bytes.Buffer
	if err := pprof.StartCPUProfile(&raw); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	select {
	case <-time.After(d):
	case <-r.Context().Done():
	}
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(raw.Bytes())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}

type errorRsp struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorRsp{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
