package sources

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors. Sources with incomplete
// settings produce warnings, they fail later only if they are selected for
// an update.
func (c *SourcesConfig) Validate() error {
	c.Warnings = nil
	checkURL := func(src, field, val string) error {
		if val == "" {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Source:     src,
				Field:      field,
				Message:    field + " is empty",
				Suggestion: fmt.Sprintf("Set '%s.%s' in sources.yaml", src, field),
			})
			return nil
		}
		if !IsValidURL(val) {
			return fmt.Errorf("%s: invalid %s '%s'", src, field, val)
		}
		return nil
	}

	if err := checkURL("explorenz", "url", c.ExplorEnz.URL); err != nil {
		return err
	}
	if err := checkURL("kegg", "index_url", c.KEGG.IndexURL); err != nil {
		return err
	}
	if err := checkURL("kegg", "base_url", c.KEGG.BaseURL); err != nil {
		return err
	}
	if err := checkURL("pdb", "mirror_url", c.PDB.MirrorURL); err != nil {
		return err
	}
	if c.PDB.MirrorURL != "" && !strings.HasSuffix(c.PDB.MirrorURL, "/") {
		c.PDB.MirrorURL += "/"
	}

	for src, u := range map[string]*UniProtConfig{
		"sprot": &c.SwissProt, "trembl": &c.TrEMBL,
	} {
		if u.Host == "" || u.RemoteFile == "" {
			return fmt.Errorf("%s: host and remote_file are required", src)
		}
		if !strings.Contains(u.Host, ":") {
			u.Host += ":21"
		}
		if u.User == "" {
			u.User = "anonymous"
			u.Password = "anonymous"
		}
	}

	if c.BRENDA.CompressedFile == "" {
		c.Warnings = append(c.Warnings, ValidationWarning{
			Source:     "brenda",
			Field:      "compressed_file",
			Message:    "BRENDA release archive is not set",
			Suggestion: "Download BRENDA text release and set 'brenda.compressed_file'",
		})
	}
	return nil
}

// IsValidURL checks if a string is a valid URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
}
