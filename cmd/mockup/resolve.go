package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/storeops/networking/config"
	"github.com/storeops/networking/mockup"
	"github.com/storeops/networking/request"
)

// ErrInvalidRouteFlag indicates a --route value not in suffix=fixture form.
var ErrInvalidRouteFlag = errors.New("route flag must be suffix=fixture")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newResolveCmd(a *app) *cobra.Command {
	var (
		path   string
		siteID int64
		raw    bool
		routes []string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the simulated response for a request path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseRoutes(routes)
			if err != nil {
				return err
			}

			n := mockup.New(mockup.Config{Loader: a.loader(), Logger: a.log})
			config.Register(n, a.cfg.Routes)
			config.Register(n, extra)

			req := request.Jetpack{
				WooAPIVersion: request.WooV3,
				Method:        http.MethodGet,
				SiteID:        siteID,
				Path:          path,
			}
			a.log.Debug("resolving request", zap.String("path", path), zap.Int64("site_id", siteID))

			out := cmd.OutOrStdout()
			if raw {
				var result error
				n.ResponseData(req, func(data []byte, err error) {
					if err != nil {
						result = err
						return
					}
					_, result = out.Write(data)
				})
				return result
			}

			var result error
			n.ResponseJSON(req, func(v any, err error) {
				if err != nil {
					result = err
					return
				}
				b, err := json.MarshalIndent(v, "", "  ")
				if err != nil {
					result = err
					return
				}
				_, result = fmt.Fprintln(out, string(b))
			})
			return result
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "request path to resolve, e.g. products/282")
	cmd.Flags().Int64Var(&siteID, "site", 0, "site ID used for the request")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the fixture bytes instead of re-encoded JSON")
	cmd.Flags().StringArrayVarP(&routes, "route", "r", nil, "simulated route as suffix=fixture, repeatable")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

// parseRoutes turns suffix=fixture flag values into routes.
func parseRoutes(values []string) ([]config.Route, error) {
	routes := make([]config.Route, 0, len(values))
	for _, v := range values {
		suffix, fixture, ok := strings.Cut(v, "=")
		if !ok || fixture == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRouteFlag, v)
		}
		routes = append(routes, config.Route{Suffix: suffix, Fixture: fixture})
	}
	return routes, nil
}
