package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigKeys_Unique(t *testing.T) {
	seen := map[string]bool{}
	sections := map[string]bool{}
	for _, s := range ConfigSections() {
		sections[s] = true
	}
	for _, k := range ConfigKeys {
		require.False(t, seen[k.Name], "duplicate key %s", k.Name)
		seen[k.Name] = true
		require.True(t, sections[k.Section], "key %s has unknown section %q", k.Name, k.Section)
		if k.Default != "" {
			require.NoError(t, CheckConfigValue(k.Name, k.Default), k.Name)
		}
	}
}

func TestCheckConfigValue(t *testing.T) {
	require.NoError(t, CheckConfigValue("prompt_style", "line"))
	require.Error(t, CheckConfigValue("prompt_style", "gui"))
	require.NoError(t, CheckConfigValue("initial_balance", ""))
	require.NoError(t, CheckConfigValue("initial_balance", "2.5"))
	require.Error(t, CheckConfigValue("initial_balance", "-2"))
	require.Error(t, CheckConfigValue("enable_log", "sometimes"))
	require.Error(t, CheckConfigValue("networks", " , "))
	require.Error(t, CheckConfigValue("log_max_size_mb", "0"))
	require.ErrorContains(t, CheckConfigValue("nope", "x"), "unknown config key")
}

func TestSplitNetworks(t *testing.T) {
	require.Equal(t, []string{"mainnet", "testnet"}, SplitNetworks(" mainnet, ,testnet,"))
	require.Empty(t, SplitNetworks(""))
}

func TestVisibleConfigKeys(t *testing.T) {
	for _, k := range VisibleConfigKeys() {
		require.False(t, k.Hidden)
	}
	_, ok := GetConfigKey("log_max_size_mb")
	require.True(t, ok)
	require.True(t, IsValidConfigKey("networks"))
	require.False(t, IsValidConfigKey("theme"))
}
