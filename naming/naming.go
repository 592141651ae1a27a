// Package naming validates and generates game names and derives every
// cloud-side identifier from them.
package naming

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// Name is a lowercase token of letters and internal hyphens. It's the root
// of every identifier a game environment owns.
type Name string

var pattern = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)

type InvalidNameError string

func (err InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q (lowercase letters and internal hyphens only)", string(err))
}

// Parse accepts s as a Name if it's all lowercase letters with hyphens only
// between letter runs. Anything else, including leading or trailing hyphens,
// uppercase letters, and digits, is an InvalidNameError.
func Parse(s string) (Name, error) {
	if !pattern.MatchString(s) {
		return "", InvalidNameError(s)
	}
	return Name(s), nil
}

// Generate derives a descriptor-noun Name by sampling each part uniformly
// from the fixed sets below. Pass a *rand.Rand to make the choice
// deterministic; pass nil to use the shared seeded source.
func Generate(r *rand.Rand) Name {
	var descriptor, noun string
	if r == nil {
		descriptor = descriptors[rand.Intn(len(descriptors))]
		noun = nouns[rand.Intn(len(nouns))]
	} else {
		descriptor = descriptors[r.Intn(len(descriptors))]
		noun = nouns[r.Intn(len(nouns))]
	}
	return Name(descriptor + "-" + noun)
}

func Descriptors() []string {
	return append([]string{}, descriptors...)
}

func Nouns() []string {
	return append([]string{}, nouns...)
}

func (n Name) String() string { return string(n) }

// ResourceGroup names the Azure resource group that holds everything the
// game environment provisions.
func (n Name) ResourceGroup() string {
	return string(n) + "-rg"
}

// StorageAccount names the Terraform state storage account. Azure storage
// account names are 3-24 lowercase alphanumeric characters with no hyphens,
// so hyphens are stripped and the result truncated to fit the suffix.
func (n Name) StorageAccount() string {
	s := strings.ReplaceAll(string(n), "-", "")
	if len(s) > 22 {
		s = s[:22]
	}
	return s + "sa"
}

// StateContainer names the blob container that holds Terraform state inside
// the storage account.
func (n Name) StateContainer() string {
	return string(n) + "-tfstate"
}

// Identity names the user-assigned managed identity that the external tools
// provision for the game environment.
func (n Name) Identity() string {
	return string(n) + "-id"
}

// Repository names the companion source-control repository for the game
// environment.
func (n Name) Repository() string {
	return string(n) + "-infra"
}

var descriptors = []string{
	"ancient",
	"brave",
	"calm",
	"clever",
	"cosmic",
	"crimson",
	"daring",
	"dusty",
	"fluffy",
	"gentle",
	"golden",
	"hidden",
	"jolly",
	"lucky",
	"mellow",
	"noble",
	"rapid",
	"silent",
	"swift",
	"wild",
}

var nouns = []string{
	"badger",
	"comet",
	"dog",
	"falcon",
	"fox",
	"glacier",
	"harbor",
	"lantern",
	"meadow",
	"otter",
	"panda",
	"pine",
	"raven",
	"reef",
	"sparrow",
	"summit",
	"tiger",
	"valley",
	"walrus",
	"willow",
}
