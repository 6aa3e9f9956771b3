package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/usermgmt/usermgmt/internal/userapi"
)

// readDocument decodes a JSON or YAML file into a generic map. Files ending
// in .yaml or .yml are read as YAML, everything else as JSON.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// userPayload builds the create/update body from -f and the field flags.
// Flags override values from the file.
func userPayload(opts options) (userapi.User, error) {
	var user userapi.User
	if opts.file != "" {
		doc, err := readDocument(opts.file)
		if err != nil {
			return user, err
		}
		// Round trip through JSON so YAML keys follow the wire names.
		raw, err := json.Marshal(doc)
		if err != nil {
			return user, fmt.Errorf("encode %s: %w", opts.file, err)
		}
		if err := json.Unmarshal(raw, &user); err != nil {
			return user, fmt.Errorf("decode user from %s: %w", opts.file, err)
		}
	}

	if opts.username != "" {
		user.Username = opts.username
	}
	if opts.email != "" {
		user.Email = opts.email
	}
	if opts.fullName != "" {
		user.FullName = opts.fullName
	}
	if opts.active != "" {
		active, err := strconv.ParseBool(opts.active)
		if err != nil {
			return user, usagef("invalid -active %q: want true or false", opts.active)
		}
		user.IsActive = userapi.Bool(active)
	}
	return user, nil
}

// searchCriteria merges the criteria file with key=value arguments.
// Arguments override file entries of the same key.
func searchCriteria(file string, args []string) (userapi.SearchCriteria, error) {
	criteria := userapi.SearchCriteria{}
	if file != "" {
		doc, err := readDocument(file)
		if err != nil {
			return nil, err
		}
		for k, v := range doc {
			criteria[k] = v
		}
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, usagef("invalid criterion %q: want key=value", arg)
		}
		criteria[key] = value
	}
	return criteria, nil
}
