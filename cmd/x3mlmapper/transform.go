package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/x3mlmapper/mapper"
	"github.com/geoknoesis/x3mlmapper/rdf"
	"github.com/geoknoesis/x3mlmapper/server"
	"github.com/geoknoesis/x3mlmapper/x3ml"
)

const (
	flagDefinition = "definition"
	flagSource     = "source"
	flagSourceURL  = "source-url"
	flagGenerator  = "generator"
	flagThesaurus  = "thesaurus"
	flagUUIDSize   = "uuid-size"
	flagFormat     = "format"
	flagOutput     = "output"
)

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform --definition FILE|URL (--source FILE | --source-url URL)",
		Short: "Run a mapping definition against a local or remote XML document",
		Example: `  x3mlmapper transform --definition mapping.x3ml --source records.xml --generator policy.xml --format turtle
  x3mlmapper transform --definition https://editor.example.org/mapping.x3ml --source-url https://example.org/records.xml`,
		Args: cobra.NoArgs,
		RunE: runTransform,
	}
	cmd.Flags().String(flagDefinition, "", "mapping definition file or URL")
	cmd.Flags().String(flagSource, "", "source XML file")
	cmd.Flags().String(flagSourceURL, "", "source XML URL, used when --source is not set")
	cmd.Flags().String(flagGenerator, "", "generator policy file")
	cmd.Flags().String(flagThesaurus, "", "SKOS thesaurus file (Turtle, RDF/XML or N-Triples)")
	cmd.Flags().Int(flagUUIDSize, 0, "length of lettered UUIDs; 0 or less generates random UUIDs (default from defaults.uuidSize)")
	cmd.Flags().String(flagFormat, "rdfxml", "output format (rdfxml, turtle, ntriples, jsonld)")
	cmd.Flags().StringP(flagOutput, "o", "", "write the result to a file instead of stdout")
	_ = cmd.MarkFlagRequired(flagDefinition)
	cmd.MarkFlagsOneRequired(flagSource, flagSourceURL)
	return cmd
}

func runTransform(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log, err := GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := server.LoadConfig(cmd.Flag(flagConfig).Value.String())
	if err != nil {
		return err
	}
	formatName, _ := cmd.Flags().GetString(flagFormat)
	format, ok := rdf.ParseFormat(formatName)
	if !ok {
		return fmt.Errorf("%w: %s", rdf.ErrUnsupportedFormat, formatName)
	}
	uuidSize := cfg.Defaults.UUIDSize
	if cmd.Flags().Changed(flagUUIDSize) {
		uuidSize, _ = cmd.Flags().GetInt(flagUUIDSize)
	}

	resolver := mapper.NewResolver(
		mapper.WithUserAgent(cfg.HTTP.UserAgent),
		mapper.WithTimeout(cfg.HTTP.Timeout.Value()),
		mapper.WithLogger(log),
	)

	definition, err := contentOrURL(cmd, flagDefinition)
	if err != nil {
		return err
	}
	var thesaurus *string
	if path, _ := cmd.Flags().GetString(flagThesaurus); path != "" {
		content, err := readFile(path)
		if err != nil {
			return err
		}
		thesaurus = &content
	}
	engine, err := mapper.NewLoader(resolver, x3ml.NewFactory(), log).Load(ctx, definition, thesaurus)
	if err != nil {
		var verr *mapper.ValidationError
		if errors.As(err, &verr) {
			for _, problem := range verr.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), problem)
			}
		}
		return err
	}

	doc, err := sourceDocument(cmd, mapper.NewDocumentParser(resolver))
	if err != nil {
		return err
	}

	policy := ""
	if path, _ := cmd.Flags().GetString(flagGenerator); path != "" {
		if policy, err = readFile(path); err != nil {
			return err
		}
	}
	generator, err := mapper.NewPolicyBuilder(x3ml.NewPolicyFactory()).Build(policy, uuidSize)
	if err != nil {
		return err
	}

	out, err := engine.Execute(ctx, doc, generator)
	if err != nil {
		return err
	}
	log.DebugContext(ctx, "mapping complete", "format", format)

	path, _ := cmd.Flags().GetString(flagOutput)
	return writeResult(cmd.OutOrStdout(), path, out, format)
}

// writeResult writes out to path, or to stdout when path is empty.
func writeResult(stdout io.Writer, path string, out mapper.Output, format rdf.Format) (err error) {
	w := stdout
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		w = f
	}
	if format == rdf.FormatNTriples {
		_, err = io.WriteString(w, out.String())
		return err
	}
	return out.WriteAs(w, format)
}

func sourceDocument(cmd *cobra.Command, docs *mapper.DocumentParser) (*xmlquery.Node, error) {
	if path, _ := cmd.Flags().GetString(flagSource); path != "" {
		content, err := readFile(path)
		if err != nil {
			return nil, err
		}
		return docs.DocumentFromString(content)
	}
	rawURL, _ := cmd.Flags().GetString(flagSourceURL)
	return docs.DocumentFromURL(cmd.Context(), rawURL)
}

// contentOrURL returns the flag value when it is a URL and the named file's content otherwise.
func contentOrURL(cmd *cobra.Command, flag string) (string, error) {
	v, _ := cmd.Flags().GetString(flag)
	if mapper.IsURL(v) {
		return v, nil
	}
	return readFile(v)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
