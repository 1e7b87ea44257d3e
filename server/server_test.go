package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/vmquiz/datarecording"
	"github.com/sarchlab/vmquiz/problem"
	"github.com/sarchlab/vmquiz/sampling"
	"github.com/sarchlab/vmquiz/vms"
)

var _ = Describe("Server", func() {
	var (
		store   datarecording.Store
		s       *Server
		typeURL string
	)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		return rec
	}

	create := func(body string) createProblemRsp {
		rsp := do(http.MethodPost, typeURL+"/problems", body)
		Expect(rsp.Code).To(Equal(http.StatusCreated))

		var created createProblemRsp
		Expect(json.Unmarshal(rsp.Body.Bytes(), &created)).To(Succeed())

		return created
	}

	BeforeEach(func() {
		catalog := problem.NewCatalog()
		vmsType := vms.MakeBuilder().
			WithSource(sampling.NewLockedSource(3)).
			Build()
		problem.Register[vms.Seed, vms.Problem](catalog, vmsType)

		store = datarecording.New(datarecording.InMemory)
		s = NewServer(catalog, store)
		typeURL = "/api/types/" + url.PathEscape(vms.Name)
	})

	AfterEach(func() {
		store.Close()
	})

	It("should list the problem types", func() {
		rsp := do(http.MethodGet, "/api/types", "")

		Expect(rsp.Code).To(Equal(http.StatusOK))
		Expect(rsp.Body.String()).To(MatchJSON(`["Hierarchical VM sizes"]`))
	})

	It("should return a valid random seed", func() {
		rsp := do(http.MethodGet, typeURL+"/seed", "")
		Expect(rsp.Code).To(Equal(http.StatusOK))

		var seed vms.Seed
		Expect(json.Unmarshal(rsp.Body.Bytes(), &seed)).To(Succeed())
		Expect(seed.Validate()).To(Succeed())
	})

	It("should return 404 for unknown types", func() {
		rsp := do(http.MethodGet, "/api/types/nothing/seed", "")

		Expect(rsp.Code).To(Equal(http.StatusNotFound))
	})

	It("should generate a problem from a posted seed", func() {
		created := create(`{
			"addressUnit": 1,
			"virtualAddressLength": 32,
			"physicalAddressLength": 30,
			"pageOffsetLength": 12,
			"levelOffsetLengths": [10, 10],
			"controlBitCount": 4
		}`)

		Expect(created.ID).NotTo(BeEmpty())
		Expect(created.Type).To(Equal(vms.Name))

		p := created.Problem.(map[string]any)
		Expect(p["pageBytes"]).To(BeNumerically("==", 4096))
		Expect(p["ppnLength"]).To(BeNumerically("==", 18))
	})

	It("should reject invalid seeds", func() {
		rsp := do(http.MethodPost, typeURL+"/problems", `{"addressUnit": 3}`)

		Expect(rsp.Code).To(Equal(http.StatusBadRequest))
		Expect(rsp.Body.String()).To(ContainSubstring("invalid seed"))
	})

	It("should render a recorded problem with and without solution", func() {
		created := create("")

		rsp := do(http.MethodGet, "/api/problems/"+created.ID, "")
		Expect(rsp.Code).To(Equal(http.StatusOK))
		Expect(rsp.Body.String()).To(ContainSubstring("Page size"))
		Expect(rsp.Body.String()).NotTo(ContainSubstring("*"))

		rsp = do(http.MethodGet,
			"/api/problems/"+created.ID+"?solution=true", "")
		Expect(rsp.Code).To(Equal(http.StatusOK))
		Expect(rsp.Body.String()).NotTo(ContainSubstring("?"))
	})

	It("should reject a malformed solution flag", func() {
		created := create("")

		rsp := do(http.MethodGet,
			"/api/problems/"+created.ID+"?solution=maybe", "")

		Expect(rsp.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for unknown problems", func() {
		rsp := do(http.MethodGet, "/api/problems/unknown", "")

		Expect(rsp.Code).To(Equal(http.StatusNotFound))
	})

	It("should list recorded problems with pagination", func() {
		for i := 0; i < 3; i++ {
			create("")
		}

		rsp := do(http.MethodGet, "/api/problems?limit=2", "")
		Expect(rsp.Code).To(Equal(http.StatusOK))

		var list listProblemsRsp
		Expect(json.Unmarshal(rsp.Body.Bytes(), &list)).To(Succeed())
		Expect(list.Total).To(Equal(3))
		Expect(list.Problems).To(HaveLen(2))
	})

	It("should reject a malformed limit", func() {
		rsp := do(http.MethodGet, "/api/problems?limit=many", "")

		Expect(rsp.Code).To(Equal(http.StatusBadRequest))
	})

	It("should report resource usage", func() {
		rsp := do(http.MethodGet, "/api/resource", "")
		Expect(rsp.Code).To(Equal(http.StatusOK))

		var res resourceRsp
		Expect(json.Unmarshal(rsp.Body.Bytes(), &res)).To(Succeed())
		Expect(res.MemorySize).To(BeNumerically(">", 0))
	})

	It("should report the number of problem types", func() {
		rsp := do(http.MethodGet, "/api/resource", "")
		Expect(rsp.Code).To(Equal(http.StatusOK))

		var res resourceRsp
		Expect(json.Unmarshal(rsp.Body.Bytes(), &res)).To(Succeed())
		Expect(res.NumTypes).To(Equal(1))
		Expect(res.NumGoroutine).To(BeNumerically(">", 0))
	})

	It("should show the details of a recorded problem", func() {
		created := create("")

		rsp := do(http.MethodGet, "/api/problems/"+created.ID+"/details", "")

		Expect(rsp.Code).To(Equal(http.StatusOK))
		Expect(rsp.Body.String()).To(ContainSubstring(created.ID))
		Expect(rsp.Body.String()).To(ContainSubstring(created.Type))
	})

	It("should return 404 for the details of unknown problems", func() {
		rsp := do(http.MethodGet, "/api/problems/unknown/details", "")

		Expect(rsp.Code).To(Equal(http.StatusNotFound))
	})

	It("should collect a CPU profile", func() {
		rsp := do(http.MethodGet, "/api/profile?duration=50ms", "")

		Expect(rsp.Code).To(Equal(http.StatusOK))
		Expect(rsp.Body.String()).To(ContainSubstring(`"Sample"`))
	})

	DescribeTable("should reject invalid profile durations",
		func(duration string) {
			rsp := do(http.MethodGet, "/api/profile?duration="+duration, "")

			Expect(rsp.Code).To(Equal(http.StatusBadRequest))
		},
		Entry("not a duration", "soon"),
		Entry("negative", "-1s"),
		Entry("too long", "1h"),
	)

	It("should fall back to a random port for reserved ports", func() {
		Expect(s.WithPortNumber(80).portNumber).To(Equal(0))
		Expect(s.listenAddress()).To(Equal(":0"))

		Expect(s.WithPortNumber(8080).portNumber).To(Equal(8080))
		Expect(s.listenAddress()).To(Equal(":8080"))
	})

	It("should listen on the lowest allowed port", func() {
		Expect(s.WithPortNumber(1000).listenAddress()).To(Equal(":1000"))
	})
})
