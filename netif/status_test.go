package netif

import "testing"

func TestCheckStatus(t *testing.T) {
	if err := checkStatus("esp_read_mac", StatusOK); err != nil {
		t.Errorf("got %v want nil", err)
	}

	err := checkStatus("esp_netif_get_ip_info", StatusNetifIfNotReady)
	want := "esp_netif_get_ip_info failed: ESP_ERR_ESP_NETIF_IF_NOT_READY (0x5002)"
	if err == nil || err.Error() != want {
		t.Errorf("got %v want %s", err, want)
	}

	err = checkStatus("esp_read_mac", Status(0x7777))
	want = "esp_read_mac failed: ESP_ERR_UNKNOWN (0x7777)"
	if err == nil || err.Error() != want {
		t.Errorf("got %v want %s", err, want)
	}
}
