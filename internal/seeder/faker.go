package seeder

import (
	"fmt"
	"math/rand"
	"strings"
)

// DataGenerator is the text provider behind every generated string.
// It shares the run's random source so output is reproducible per seed.
type DataGenerator struct {
	rand    *rand.Rand
	counter int
}

func NewDataGenerator(r *rand.Rand) *DataGenerator {
	return &DataGenerator{
		rand:    r,
		counter: 0,
	}
}

var (
	firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry",
		"Wei", "Li", "Mei", "Jun", "Hao", "Yan", "Lin", "Xin", "Ming", "Ting"}
	lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Wang", "Zhang", "Liu", "Chen", "Yang", "Zhao", "Huang", "Zhou", "Wu", "Xu"}
	productWords = []string{"Classic", "Urban", "Silk", "Cotton", "Linen", "Cloud", "Breeze", "Aurora", "Velvet", "Nomad",
		"Harbor", "Summit", "Maple", "Coral", "Ember", "Luna", "Sierra", "Willow", "Atlas", "Pearl"}
	cities = []string{"Beijing", "Shanghai", "Guangzhou", "Shenzhen", "Hangzhou", "Chengdu", "Wuhan", "Nanjing",
		"Xi'an", "Chongqing", "Suzhou", "Tianjin", "Qingdao", "Xiamen", "Changsha"}
)

func (g *DataGenerator) Name() string {
	return firstNames[g.rand.Intn(len(firstNames))] + " " + lastNames[g.rand.Intn(len(lastNames))]
}

// Username derives a login from a full name. It is unique within one generator.
func (g *DataGenerator) Username(fullName string) string {
	g.counter++
	handle := strings.ToLower(strings.Join(strings.Fields(fullName), "."))
	return fmt.Sprintf("%s%d", handle, g.counter)
}

func (g *DataGenerator) Email(username string) string {
	domains := []string{"example.com", "test.com", "demo.com", "mail.com"}
	return fmt.Sprintf("%s@%s", username, domains[g.rand.Intn(len(domains))])
}

func (g *DataGenerator) Gender() string {
	if g.rand.Intn(2) == 0 {
		return "F"
	}
	return "M"
}

func (g *DataGenerator) City() string {
	return cities[g.rand.Intn(len(cities))]
}

func (g *DataGenerator) ProductName(suffixes []string) string {
	name := productWords[g.rand.Intn(len(productWords))] + " " + productWords[g.rand.Intn(len(productWords))]
	if len(suffixes) > 0 {
		name += suffixes[g.rand.Intn(len(suffixes))]
	}
	return name
}

func (g *DataGenerator) Sentence() string {
	sentences := []string{
		"Crafted from carefully selected materials for everyday comfort.",
		"A versatile piece that pairs easily with the rest of your wardrobe.",
		"Designed in house and tested for durability.",
		"Lightweight, breathable and easy to care for.",
		"A customer favorite that returns every season.",
		"Finished by hand with attention to every detail.",
	}
	return sentences[g.rand.Intn(len(sentences))]
}

func (g *DataGenerator) Paragraph() string {
	n := 2 + g.rand.Intn(3)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.Sentence()
	}
	return strings.Join(parts, " ")
}
