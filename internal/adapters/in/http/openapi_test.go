package http

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var pathParam = regexp.MustCompile(`:([A-Za-z]+)`)

func (s *ServerSuite) TestEveryRouteIsDocumented() {
	doc, err := LoadOpenAPI(s.T().Context())
	s.Require().NoError(err)

	for _, r := range s.router.Routes() {
		if !strings.HasPrefix(r.Path, apiPrefix) {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimPrefix(r.Path, apiPrefix), "{$1}")

		item := doc.Document().Paths.Find(path)
		if s.NotNil(item, "undocumented path %s", path) {
			s.NotNil(item.GetOperation(r.Method), "undocumented %s %s", r.Method, path)
		}
	}
}

func (s *ServerSuite) TestServesDocumentation() {
	rec := s.do(http.MethodGet, "/openapi.json", nil, nil)
	s.expect(rec, http.StatusOK)

	var served openapi3.T
	s.Require().NoError(served.UnmarshalJSON(rec.Body.Bytes()))
	s.Equal("Fulfillment API", served.Info.Title)

	rec = s.do(http.MethodGet, "/swagger/doc.json", nil, nil)
	s.expect(rec, http.StatusOK)
	s.Contains(rec.Body.String(), "createOrder")
}
