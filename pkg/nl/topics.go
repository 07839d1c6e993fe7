package nl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/store"
	"github.com/OFFIS-RIT/statnl/pkg/triple"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TopicMembers is one topic cache entry.
type TopicMembers struct {
	ID      string
	Members []string
}

// BuildTopicCache collects the members of every Topic and StatVarPeerGroup
// in triples. Members are de-duplicated in first-seen order and entries
// without members are dropped.
func BuildTopicCache(triples []triple.Triple) ([]TopicMembers, []*MalformedEntityError) {
	var topics []TopicMembers
	var skipped []*MalformedEntityError

	for _, e := range groupEntities(triples) {
		if !e.is(triple.EntityTypeTopic, triple.EntityTypeStatVarPeerGroup) {
			continue
		}
		if strings.TrimSpace(e.dcid) == "" {
			skipped = append(skipped, &MalformedEntityError{Reason: ReasonMissingDCID})
			continue
		}
		if len(e.members) == 0 {
			logger.Debug("[NL] Topic has no members", "dcid", e.dcid)
			continue
		}
		topics = append(topics, TopicMembers{ID: e.dcid, Members: e.members})
	}

	return topics, skipped
}

// EncodeTopicCache renders topics as an indented JSON object keyed by topic
// id, keeping the input order of the keys.
func EncodeTopicCache(topics []TopicMembers) ([]byte, error) {
	cache := orderedmap.New[string, []string]()
	for _, t := range topics {
		cache.Set(t.ID, t.Members)
	}

	content, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(content, '\n'), nil
}

// GenerateTopicCache writes custom_dc_topic_cache.json to dir. Plain
// statistical variable triples are expected to be filtered out by the
// caller.
func (g *Generator) GenerateTopicCache(ctx context.Context, triples []triple.Triple, dir store.Dir) error {
	topics, skipped := BuildTopicCache(triples)
	for _, s := range skipped {
		logger.Warn("[NL] Skipping malformed topic", "dcid", s.DCID, "reason", s.Reason)
		g.recorder.EntitySkipped(s.Reason)
	}

	content, err := EncodeTopicCache(topics)
	if err != nil {
		return fmt.Errorf("failed to encode topic cache: %w", err)
	}

	f, err := dir.File(TopicCacheFileName)
	if err != nil {
		return err
	}
	if err := f.Write(ctx, content); err != nil {
		return fmt.Errorf("failed to write topic cache: %w", err)
	}

	g.recorder.TopicsWritten(len(topics))
	logger.Info("[NL] Wrote topic cache", "topics", len(topics), "path", f.Path())
	return nil
}
