package service

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"myscraper/domain"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Labels set on the scraped targets.
const (
	labelInstance               = "instance"
	labelSoftware               = "software"
	labelAvailableBandwidthMbps = "available_bandwidth_mbps"
	labelCoreCount              = "core_count"

	labelJitsiURL         = "jitsi_url"
	labelJitsiHostedBy    = "jitsi_hosted_by"
	labelJitsiHostedByURL = "jitsi_hosted_by_url"
	labelJitsiHostedKind  = "jitsi_hosted_by_kind"

	labelURL          = "url"
	labelHostedBy     = "hosted_by"
	labelHostedByURL  = "hosted_by_url"
	labelHostedByKind = "hosted_by_kind"
)

var jitsiRequiredLabels = []string{
	labelInstance,
	labelJitsiHostedBy,
	labelJitsiHostedByURL,
	labelJitsiURL,
	labelJitsiHostedKind,
	labelSoftware,
	labelAvailableBandwidthMbps,
	labelCoreCount,
}

var edumeetRequiredLabels = []string{
	labelInstance,
	labelURL,
	labelHostedBy,
	labelHostedByURL,
	labelHostedByKind,
	labelAvailableBandwidthMbps,
	labelCoreCount,
	labelSoftware,
}

// probeUp is the probe_success value of a reachable instance.
const probeUp = "1"

// CatalogInput holds the results of the five queries of one cycle.
type CatalogInput struct {
	JitsiParticipants []domain.Series
	JitsiCPUUsage     []domain.Series
	EdumeetProbe      []domain.Series
	EdumeetCPUUsage   []domain.Series
	EdumeetPeers      []domain.Series
}

// CatalogBuilder folds query results into a Snapshot.
type CatalogBuilder struct {
	logger log.Logger
}

// NewCatalogBuilder creates a CatalogBuilder. Panics on nil logger.
func NewCatalogBuilder(logger log.Logger) *CatalogBuilder {
	logger = NilPanic(logger, "service.catalog.go: logger is required")
	return &CatalogBuilder{
		logger: log.WithPrefix(logger, "component", "CatalogBuilder"),
	}
}

// Build folds the inputs in a fixed order: jitsi participants, jitsi cpu usage,
// edumeet probe, edumeet cpu usage, edumeet peers. Series missing a required
// label, carrying an unknown host kind or an unparsable value are skipped.
// Instances are sorted by name.
func (b *CatalogBuilder) Build(in CatalogInput) domain.Snapshot {
	c := &catalog{
		logger:    b.logger,
		instances: make(map[string]*domain.Instance),
		credits:   domain.NewCreditSet(),
	}

	for _, s := range in.JitsiParticipants {
		c.addJitsiParticipants(s)
	}
	for _, s := range in.JitsiCPUUsage {
		c.addJitsiCPUUsage(s)
	}
	for _, s := range in.EdumeetProbe {
		c.addEdumeetProbe(s)
	}
	for _, s := range in.EdumeetCPUUsage {
		c.addEdumeetCPUUsage(s)
	}
	for _, s := range in.EdumeetPeers {
		c.addEdumeetPeers(s)
	}

	return c.snapshot()
}

// catalog is the state of one Build call.
type catalog struct {
	logger    log.Logger
	instances map[string]*domain.Instance
	credits   *domain.CreditSet
}

func (c *catalog) addJitsiParticipants(s domain.Series) {
	const source = "jitsi_participants"
	if !c.accept(s, source, jitsiRequiredLabels, domain.SoftwareJitsi) {
		return
	}
	users, ok := parseCount(s.Sample.Value)
	if !ok {
		c.skip(s, source, "invalid participant count")
		return
	}
	inst, ok := c.jitsiInstance(s, source)
	if !ok {
		return
	}
	inst.UserCount = domain.Ptr(users)
	c.put(inst)
}

func (c *catalog) addJitsiCPUUsage(s domain.Series) {
	const source = "jitsi_cpu_usage"
	if !c.accept(s, source, jitsiRequiredLabels, domain.SoftwareJitsi) {
		return
	}
	usage, ok := parseUsage(s.Sample.Value)
	if !ok {
		c.skip(s, source, "invalid cpu usage")
		return
	}
	inst, ok := c.lookup(s, source, domain.NameFromURL(s.Label(labelJitsiURL)))
	if !ok {
		return
	}
	inst.CPUUsage = domain.Ptr(usage)
}

func (c *catalog) addEdumeetProbe(s domain.Series) {
	const source = "edumeet_probe"
	if !c.accept(s, source, edumeetRequiredLabels, domain.SoftwareEdumeet) {
		return
	}
	if s.Sample.Value != probeUp {
		c.skip(s, source, "probe down")
		return
	}
	// The probe identity comes from jitsi_url when the target sets it.
	nameURL, ok := s.Labels[labelJitsiURL]
	if !ok {
		nameURL = s.Label(labelURL)
	}
	inst, ok := c.edumeetInstance(s, source, nameURL)
	if !ok {
		return
	}
	c.put(inst)
}

func (c *catalog) addEdumeetCPUUsage(s domain.Series) {
	const source = "edumeet_cpu_usage"
	if !c.accept(s, source, edumeetRequiredLabels, domain.SoftwareEdumeet) {
		return
	}
	usage, ok := parseUsage(s.Sample.Value)
	if !ok {
		c.skip(s, source, "invalid cpu usage")
		return
	}
	inst, ok := c.edumeetInstance(s, source, s.Label(labelURL))
	if !ok {
		return
	}
	inst.CPUUsage = domain.Ptr(usage)
	c.put(inst)
}

func (c *catalog) addEdumeetPeers(s domain.Series) {
	const source = "edumeet_peers"
	if !c.accept(s, source, edumeetRequiredLabels, domain.SoftwareEdumeet) {
		return
	}
	peers, ok := parseCount(s.Sample.Value)
	if !ok {
		c.skip(s, source, "invalid peer count")
		return
	}
	inst, ok := c.lookup(s, source, domain.NameFromURL(s.Label(labelURL)))
	if !ok {
		return
	}
	inst.UserCount = domain.Ptr(peers)
}

// accept checks the label set and the software tag of s.
func (c *catalog) accept(s domain.Series, source string, required []string, software domain.Software) bool {
	if !s.HasLabels(required) {
		c.skip(s, source, "missing required labels")
		return false
	}
	if domain.Software(s.Label(labelSoftware)) != software {
		c.skip(s, source, "other software")
		return false
	}
	return true
}

func (c *catalog) jitsiInstance(s domain.Series, source string) (domain.Instance, bool) {
	kind, ok := domain.ParseHostKind(s.Label(labelJitsiHostedKind))
	if !ok {
		c.skip(s, source, "unknown host kind")
		return domain.Instance{}, false
	}
	inst := domain.Instance{
		Name:                   domain.NameFromURL(s.Label(labelJitsiURL)),
		URL:                    domain.TrimTrailingSlash(s.Label(labelJitsiURL)),
		By:                     s.Label(labelJitsiHostedBy),
		ByURL:                  domain.TrimTrailingSlash(s.Label(labelJitsiHostedByURL)),
		ByKind:                 kind,
		Software:               domain.SoftwareJitsi,
		AvailableBandwidthMbps: s.Label(labelAvailableBandwidthMbps),
		CoreCount:              s.Label(labelCoreCount),
	}
	if inst.Name == "" {
		c.skip(s, source, "empty instance url")
		return domain.Instance{}, false
	}
	return inst, true
}

func (c *catalog) edumeetInstance(s domain.Series, source string, nameURL string) (domain.Instance, bool) {
	kind, ok := domain.ParseHostKind(s.Label(labelHostedByKind))
	if !ok {
		c.skip(s, source, "unknown host kind")
		return domain.Instance{}, false
	}
	inst := domain.Instance{
		Name:                   domain.NameFromURL(nameURL),
		URL:                    domain.TrimTrailingSlash(s.Label(labelURL)),
		By:                     s.Label(labelHostedBy),
		ByURL:                  domain.TrimTrailingSlash(s.Label(labelHostedByURL)),
		ByKind:                 kind,
		Software:               domain.SoftwareEdumeet,
		AvailableBandwidthMbps: s.Label(labelAvailableBandwidthMbps),
		CoreCount:              s.Label(labelCoreCount),
	}
	if inst.Name == "" {
		c.skip(s, source, "empty instance url")
		return domain.Instance{}, false
	}
	return inst, true
}

// put stores inst, replacing any record with the same name, and credits its host.
func (c *catalog) put(inst domain.Instance) {
	c.credits.Add(inst.ByKind, inst.Credit())
	c.instances[inst.Name] = &inst
}

// lookup returns the record an enriching query applies to. A name nobody
// registered is skipped.
func (c *catalog) lookup(s domain.Series, source string, name string) (*domain.Instance, bool) {
	inst, ok := c.instances[name]
	if !ok {
		c.skip(s, source, "no base record")
		return nil, false
	}
	return inst, true
}

func (c *catalog) skip(s domain.Series, source string, reason string) {
	level.Debug(c.logger).Log(
		"msg", "series skipped",
		"query", source,
		"reason", reason,
		"instance", s.Label(labelInstance),
	)
}

func (c *catalog) snapshot() domain.Snapshot {
	instances := make([]domain.Instance, 0, len(c.instances))
	for _, inst := range c.instances {
		instances = append(instances, *inst)
	}
	slices.SortFunc(instances, func(a, b domain.Instance) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return domain.Snapshot{
		Instances: instances,
		Credits:   c.credits.Lists(),
	}
}

// parseCount parses an integer gauge value. Float forms such as "3.0" are
// rounded.
func parseCount(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Round(f)), true
}

// parseUsage parses a usage value and rounds it to 2 decimal places.
func parseUsage(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Round(f*100) / 100, true
}
